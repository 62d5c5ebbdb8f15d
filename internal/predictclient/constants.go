package predictclient

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)
