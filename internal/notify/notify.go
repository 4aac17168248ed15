// Package notify abstracts the user-visible alert dialogs of the mobile app.
// Components report outcomes through a Notifier instead of returning display
// strings; the CLI prints them, tests record them.
package notify

import "fmt"

// Notifier receives user-facing outcome messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console prints notifications to stdout, prefixed by kind.
type Console struct{}

func (Console) Success(msg string) { fmt.Println("✔", msg) }
func (Console) Error(msg string)   { fmt.Println("✖", msg) }

// Recorder collects notifications for inspection in tests.
type Recorder struct {
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *Recorder) Error(msg string)   { r.Errors = append(r.Errors, msg) }

// Discard drops all notifications.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
