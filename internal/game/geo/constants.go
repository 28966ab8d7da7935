package geo

// NSWE direction bitmask constants.
// 4-bit mask of the exits a cell allows.
const (
	NSWEEast  byte = 1 << 0 // 0x01
	NSWEWest  byte = 1 << 1 // 0x02
	NSWESouth byte = 1 << 2 // 0x04
	NSWENorth byte = 1 << 3 // 0x08
	NSWEAll   byte = 0x0F
	NSWENone  byte = 0x00
)

// Layout symbols accepted by ParseLayout.
const (
	TileFloor   = '.'
	TileWall    = '#'
	TileBlocker = 'B' // impassable and blocks interaction through it
)

// Navigation defaults.
const (
	// DefaultSearchLimit bounds the accumulated path cost one search explores.
	DefaultSearchLimit = 12

	// DefaultDiagonalRatio is the largest max/min axis ratio the greedy
	// fallback still resolves to a diagonal.
	DefaultDiagonalRatio = 2.0
)
