package whatsapp

import (
	"encoding/xml"
	"net/http"
)

type twimlMessage struct {
	Body  string `xml:"Body"`
	Media string `xml:"Media,omitempty"`
}

type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Message twimlMessage `xml:"Message"`
}

// writeTwiML replies to Twilio with a message, optionally carrying a media
// URL the platform fetches separately.
func writeTwiML(w http.ResponseWriter, body, mediaURL string) {
	resp := twimlResponse{Message: twimlMessage{Body: body, Media: mediaURL}}

	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Encode(resp)
}
