package config

const (
	delimiter = "."

	Prefix = "config"

	GridPrefix = Prefix + delimiter + "grid"

	GridOverscanPrefix   = GridPrefix + delimiter + "overscan"
	GridOverscanBackward = GridOverscanPrefix + delimiter + "backward"
	GridOverscanForward  = GridOverscanPrefix + delimiter + "forward"

	GridEstimatePrefix = GridPrefix + delimiter + "estimate"
	GridEstimateRow    = GridEstimatePrefix + delimiter + "row"
	GridEstimateColumn = GridEstimatePrefix + delimiter + "column"

	GridHeaderPrefix = GridPrefix + delimiter + "header"
	GridHeaderHeight = GridHeaderPrefix + delimiter + "height"

	GridStylePrefix     = GridPrefix + delimiter + "style"
	GridStyleMaxEntries = GridStylePrefix + delimiter + "max_entries"

	SessionPrefix = Prefix + delimiter + "session"

	SessionHandlerPrefix     = SessionPrefix + delimiter + "handler"
	SessionHandlerBufferSize = SessionHandlerPrefix + delimiter + "buffer_size"
	SessionHandlerNumWorkers = SessionHandlerPrefix + delimiter + "num_workers"
	SessionIdleAfter         = SessionPrefix + delimiter + "idle_after"

	LogPrefix = Prefix + delimiter + "log"
	LogLevel  = LogPrefix + delimiter + "level"
	LogFile   = LogPrefix + delimiter + "file"

	DemoPrefix  = Prefix + delimiter + "demo"
	DemoRows    = DemoPrefix + delimiter + "rows"
	DemoColumns = DemoPrefix + delimiter + "columns"
	DemoSeed    = DemoPrefix + delimiter + "seed"
)
