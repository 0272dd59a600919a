package core

// Surface is a display sink. It is not safe for concurrent use and must
// only be touched from the UI queue.
type Surface interface {
	Name() string
	Setup() error
	IsSetup() bool
	AddRenderer(s Stream) error
	RemoveRenderer(s Stream)
}

type NoticeKind int

const (
	NoticeJoined NoticeKind = iota
	NoticeJoinFailed
	NoticeError
)

// Notice is a transient, non-blocking user notification.
type Notice struct {
	Kind    NoticeKind
	Message string
	Err     error
}

type Notifier interface {
	Notify(n Notice)
}
