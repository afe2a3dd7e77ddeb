package constants

import "time"

// remote api
const SelectorAll = "all"
const SelectorTagPrefix = "tag:"

// tags starting with this are internal to the lighting service
const ReservedTagPrefix = "_"

const DefaultServer = "http://localhost:56780"
const DefaultRequestTimeout = 10 * time.Second

// wearable link
const MaxLabelLength = 18
const MaxDeliveryAttempts = 5
const DefaultAckTimeout = 5 * time.Second

// the remote colour transition is asynchronous, re-read the state once it has settled
const ColorRefreshDelay = 2 * time.Second

// substituted when a light reports no colour
const DefaultCompactHue = 50
const DefaultCompactSaturation = 100
const DefaultCompactBrightness = 100
const DefaultKelvin = 3000

// error labels shown on the wearable
const ErrorLabelNoServer = "no_server_set"
const ErrorLabelTimeout = "timeout"
const ErrorLabelTransport = "error"
const ErrorLabelServer = "server_error"
const ErrorLabelOutOfRange = "out_of_range"

const SettingServer = "server"
