package broadcast

import (
	"context"
	"strconv"
)

// Recipient is one broadcast target: a registered user addressed by
// numeric id, or a channel addressed by its string id ("@handle" or a
// numeric-like form). Exactly one of the two fields is set.
type Recipient struct {
	UserID  int64
	Channel string
}

func UserRecipient(id int64) Recipient     { return Recipient{UserID: id} }
func ChannelRecipient(id string) Recipient { return Recipient{Channel: id} }

// IsChannel reports whether the recipient is addressed by string id.
func (r Recipient) IsChannel() bool { return r.Channel != "" }

// String renders the recipient for log lines.
func (r Recipient) String() string {
	if r.IsChannel() {
		return r.Channel
	}
	return strconv.FormatInt(r.UserID, 10)
}

// Delivery is the outbound transport. Implementations must send text
// in a markdown-like rich-text mode.
type Delivery interface {
	Send(ctx context.Context, to Recipient, text string) error
}
