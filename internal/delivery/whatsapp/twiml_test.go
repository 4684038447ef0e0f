package whatsapp

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteTwiML(t *testing.T) {
	rec := httptest.NewRecorder()
	writeTwiML(rec, "hola & adiós", "https://example.com/img.png")

	assert.Equal(t, "application/xml", rec.Header().Get("Content-Type"))
	body := rec.Body.String()
	assert.Contains(t, body, "<Response><Message>")
	assert.Contains(t, body, "<Body>hola &amp; adiós</Body>")
	assert.Contains(t, body, "<Media>https://example.com/img.png</Media>")
}

func TestWriteTwiMLWithoutMedia(t *testing.T) {
	rec := httptest.NewRecorder()
	writeTwiML(rec, "hola", "")

	assert.NotContains(t, rec.Body.String(), "<Media>")
}
