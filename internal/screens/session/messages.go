package session

import "time"

// timerTickMsg is sent every second while a timed drill is running.
type timerTickMsg time.Time

// revealDoneMsg hides the memory sequence for the given round.
type revealDoneMsg struct {
	Round int
}

// reactionGoMsg arms the reaction trial carrying the sequence number of
// the arm command that scheduled it. Stale messages (after an early
// press rearmed the trial) are dropped by comparing sequence numbers.
type reactionGoMsg struct {
	Seq int
}
