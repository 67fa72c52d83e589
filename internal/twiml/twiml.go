// Package twiml builds the minimal set of Twilio voice-response documents the
// receptionist needs: speak, gather speech, redirect, and hang up.
package twiml

import "encoding/xml"

// Voice names used for spoken responses.
const (
	VoiceEnglish = "Polly.Joanna"
	VoiceSpanish = "Polly.Miguel"
)

// Document is a TwiML <Response>. Twilio executes verbs in document order;
// the field order below matches every document this service produces.
type Document struct {
	XMLName  xml.Name  `xml:"Response"`
	Say      *Say      `xml:"Say,omitempty"`
	Gather   *Gather   `xml:"Gather,omitempty"`
	Redirect *Redirect `xml:"Redirect,omitempty"`
	Hangup   *Hangup   `xml:"Hangup,omitempty"`
}

// Say speaks text to the caller.
type Say struct {
	Voice string `xml:"voice,attr,omitempty"`
	Text  string `xml:",chardata"`
}

// Gather captures caller speech and posts the transcript to Action.
type Gather struct {
	Input       string `xml:"input,attr"`
	Action      string `xml:"action,attr"`
	Method      string `xml:"method,attr"`
	SpeechModel string `xml:"speechModel,attr,omitempty"`
	Say         *Say   `xml:"Say,omitempty"`
}

// Redirect hands the call to another webhook.
type Redirect struct {
	Method string `xml:"method,attr,omitempty"`
	URL    string `xml:",chardata"`
}

// Hangup ends the call.
type Hangup struct{}

// GatherSpeech prompts the caller and listens for speech, posting the result
// to action.
func GatherSpeech(prompt, voice, action string) *Document {
	return &Document{
		Gather: &Gather{
			Input:       "speech",
			Action:      action,
			Method:      "POST",
			SpeechModel: "phone_call",
			Say:         &Say{Voice: voice, Text: prompt},
		},
	}
}

// SayHangup speaks text and terminates the call.
func SayHangup(text, voice string) *Document {
	return &Document{
		Say:    &Say{Voice: voice, Text: text},
		Hangup: &Hangup{},
	}
}

// SayOnly speaks text and lets the call end naturally.
func SayOnly(text, voice string) *Document {
	return &Document{
		Say: &Say{Voice: voice, Text: text},
	}
}

// SayRedirect speaks text and then redirects the call to target.
func SayRedirect(text, voice, target string) *Document {
	return &Document{
		Say:      &Say{Voice: voice, Text: text},
		Redirect: &Redirect{Method: "POST", URL: target},
	}
}

// Encode renders the document with the XML declaration Twilio expects.
func (d *Document) Encode() ([]byte, error) {
	body, err := xml.Marshal(d)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
