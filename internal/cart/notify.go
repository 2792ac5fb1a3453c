package cart

import "log"

// Notifier is the toast channel: every mutation reports success or failure
// to the user. The log implementation stands in until a push channel exists.
type Notifier interface {
	Success(userID int, title, detail string)
	Error(userID int, title, detail string)
}

type LogNotifier struct{}

func (LogNotifier) Success(userID int, title, detail string) {
	log.Printf("notify user=%d ok: %s: %s", userID, title, detail)
}

func (LogNotifier) Error(userID int, title, detail string) {
	log.Printf("notify user=%d error: %s: %s", userID, title, detail)
}
