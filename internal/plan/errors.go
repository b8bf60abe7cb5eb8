package plan

import "fmt"

// Kind classifies a fatal resolution failure.
type Kind string

const (
	KindCredentials Kind = "credentials" // server URL and token not paired
	KindConfigFile  Kind = "config-file" // unreadable or malformed lighthouserc
	KindTargets     Kind = "targets"     // neither URLs nor a static dir
)

// Messages reported for fatal and advisory conditions.
const (
	MsgCredentials = "Need both a LHCI server url and an API token"
	MsgMissingCI   = "Config missing top level 'ci' property"
	MsgNoTargets   = "Need either 'urls' in action parameters or a 'static_dist_dir' in lighthouserc file"
	MsgBothTargets = "Setting both 'url' and 'static_dist_dir' will ignore urls in 'url' since 'static_dist_dir' has higher priority"
)

// FatalError ends the invocation. Resolve never returns a partial plan
// alongside it.
type FatalError struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, if any
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func fatal(kind Kind, msg string) *FatalError {
	return &FatalError{Kind: kind, Message: msg}
}
