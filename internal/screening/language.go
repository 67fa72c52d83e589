package screening

import "strings"

// spanishKeywords covers greetings, days of the week, and common service-call
// terms. Two distinct hits flip a transcript to Spanish.
var spanishKeywords = []string{
	"hola", "gracias", "por favor", "horario", "precio", "reservar",
	"agenda", "si", "no", "lunes", "martes", "miércoles", "jueves",
	"viernes", "sábado", "domingo", "llamar", "mensaje", "ayuda",
}

// IsSpanish reports whether a transcript reads as Spanish. The check is
// stateless and re-run on every utterance, so a caller can flip language
// turn to turn.
func IsSpanish(transcript string) bool {
	lowered := strings.ToLower(transcript)
	hits := 0
	for _, keyword := range spanishKeywords {
		if strings.Contains(lowered, keyword) {
			hits++
			if hits >= 2 {
				return true
			}
		}
	}
	return false
}
