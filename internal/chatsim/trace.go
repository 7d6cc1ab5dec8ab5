package chatsim

import (
	"encoding/csv"
	"io"
	"strings"
)

const timestampLayout = "2006-01-02 15:04"

// WriteTrace writes the recorded conversation trace as CSV to w.
func WriteTrace(w io.Writer, trace []TraceMessage) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"timestamp", "initiator", "question", "role", "answer", "sources"}); err != nil {
		return err
	}
	for _, m := range trace {
		if err := cw.Write([]string{
			m.Timestamp.Format(timestampLayout), m.Initiator, m.Question, m.Role, m.Answer, strings.Join(m.Sources, ";"),
		}); err != nil {
			return err
		}
	}
	return cw.Error()
}
