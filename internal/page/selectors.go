package page

// SelectorSet contains the CSS selectors a messaging surface is read and
// driven through. Markup changes upstream only require a new set here.
type SelectorSet struct {
	MessageBody   string // individual message text blocks
	SenderProfile string // per-message sender label
	ReceiverTitle string // conversation partner's name in the header
	ComposeBox    string // editable message input
	SendButton    string // send/submit button
}

// LinkedInSelectors returns the selectors for the LinkedIn messaging
// overlay.
func LinkedInSelectors() SelectorSet {
	return SelectorSet{
		MessageBody:   ".msg-s-event-listitem__body",
		SenderProfile: ".msg-s-message-group__profile-link",
		ReceiverTitle: ".msg-overlay-bubble-header__title",
		ComposeBox:    ".msg-form__contenteditable",
		SendButton:    ".msg-form__send-button",
	}
}
