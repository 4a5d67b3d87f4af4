package service

// Input limits for values passed to git-cliff
const (
	// MaxRefLength is the longest accepted side of a range expression
	MaxRefLength = 255
	// MaxPathLength is the longest accepted output path
	MaxPathLength = 4096
)
