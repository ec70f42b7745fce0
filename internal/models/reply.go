// internal/models/reply.go
package models

// Speaker tags a reply with the persona that voices it. Purely a
// presentation concern; decision logic never branches on it.
type Speaker string

const (
	SpeakerMaster       Speaker = "master"
	SpeakerSales        Speaker = "sales"
	SpeakerVerification Speaker = "verification"
	SpeakerUnderwriting Speaker = "underwriting"
	SpeakerSanction     Speaker = "sanction"
)

// Reply is one assistant message produced while handling a turn.
type Reply struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// Master is shorthand for a reply voiced by the master agent.
func Master(text string) Reply {
	return Reply{Speaker: SpeakerMaster, Text: text}
}
