package port

// Notifier alerts the operator and blocks until the alert is dismissed.
type Notifier interface {
	Notify(title, message string) error
}
