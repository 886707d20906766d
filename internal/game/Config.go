package game

const (
	DefaultGridSize       = 4
	MinGridSize           = 3
	MaxGridSize           = 6
	WinningTile           = 2048
	InitialTileCount      = 2
	LeaderboardPageSize   = 10
	MaxPlayerNameLength   = 20
	DefaultPlayerName     = "anonymous"
	DefaultAutoplayGames  = 1
	MaxAutoplayMovesCount = 100000
)

// SpawnValues are drawn with equal probability.
var SpawnValues = []int{2, 4}
