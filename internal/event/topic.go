package event

// Topic names a channel on the emitter.
type Topic string

// String returns the topic as a string.
func (t Topic) String() string {
	return string(t)
}

// TopicAll is the wildcard topic. Handlers registered on it receive every
// emit as an Envelope.
const TopicAll Topic = "*"

// Topics shared across the application suite.
const (
	TopicDrawerClosed               Topic = "drawerClosed"
	TopicDrawerOpened               Topic = "drawerOpened"
	TopicGetOrchestratorTopNavWidth Topic = "getOrchestratorTopNavWidth"
	TopicLoggedOut                  Topic = "loggedOut"
	TopicLogout                     Topic = "logout"
	TopicOffsetProfileIcon          Topic = "offsetProfileIcon"
	TopicProfileUpdated             Topic = "profileUpdated"
	TopicThemeUpdated               Topic = "themeUpdated"
	TopicTriggerOrchestratorTopNav  Topic = "triggerOrchestratorTopNav"

	TopicError   Topic = "error"
	TopicInfo    Topic = "info"
	TopicSuccess Topic = "success"
	TopicWarning Topic = "warning"
)

// Severity is one of the four notification channels.
type Severity string

// Notification severities. Each one is also a topic.
const (
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Severities lists the notification channels.
var Severities = []Severity{SeverityError, SeverityInfo, SeveritySuccess, SeverityWarning}

// Topic returns the channel the severity is emitted on.
func (s Severity) Topic() Topic {
	return Topic(s)
}

// IsValid reports whether s is one of the four notification channels.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityError, SeverityInfo, SeveritySuccess, SeverityWarning:
		return true
	default:
		return false
	}
}

// ParseSeverity converts a channel name to a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(s)
	if !sev.IsValid() {
		return "", ErrInvalidSeverity
	}
	return sev, nil
}
