package gemini

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"

	"github.com/user/llmcli/pkg/llm"
)

// dataPrefix is the fixed literal each SSE frame carries before its JSON
// payload.
var dataPrefix = []byte("data:")

// sseReader parses newline-delimited server-sent events from a stream.
// One reader serves exactly one response; it is never reused.
type sseReader struct {
	reader *bufio.Reader
}

func newSSEReader(r io.Reader) *sseReader {
	return &sseReader{reader: bufio.NewReader(r)}
}

// readEvent returns the payload of the next data frame, with the prefix
// stripped. Blank lines and non-data fields are skipped. Returns io.EOF
// when the stream ends.
func (s *sseReader) readEvent() ([]byte, error) {
	for {
		line, err := s.reader.ReadBytes('\n')
		if err != nil {
			if err == io.EOF && len(bytes.TrimSpace(line)) == 0 {
				return nil, io.EOF
			}
			if err != io.EOF {
				return nil, err
			}
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) == 0 {
			continue
		}
		if data, ok := bytes.CutPrefix(line, dataPrefix); ok {
			return bytes.TrimSpace(data), nil
		}
		// Ignore other fields (event:, id:, retry:, comments).
	}
}

// decodeStream converts raw SSE frames into uniform chunks. A frame that
// fails to parse yields one ErrUnexpectedResponse chunk and decoding
// continues; a transport error ends the stream with that error as the
// final chunk.
func decodeStream(r io.Reader, ch chan<- llm.StreamChunk) {
	sr := newSSEReader(r)
	for {
		data, err := sr.readEvent()
		if err != nil {
			if err != io.EOF {
				ch <- llm.StreamChunk{Err: classifyTransport(err)}
			}
			return
		}

		var frame wireResponse
		if err := json.Unmarshal(data, &frame); err != nil {
			ch <- llm.StreamChunk{Err: llm.ErrUnexpectedResponse}
			continue
		}

		// Only the first candidate's first part is used.
		if len(frame.Candidates) == 0 || len(frame.Candidates[0].Content.Parts) == 0 {
			ch <- llm.StreamChunk{Err: llm.ErrUnexpectedResponse}
			continue
		}
		ch <- llm.StreamChunk{Text: frame.Candidates[0].Content.Parts[0].Text}
	}
}
