package domain

// PlaybackSession is a running external player
type PlaybackSession interface {
	// Stop ends playback. Safe to call more than once.
	Stop()
}
