package detector

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Tracker protocol: each request is a 4-byte big-endian length followed by
// a JPEG image; each reply is one JSON line
//
//	{"hands":[{"points":[{"x":..,"y":..,"z":..}, ...],"handedness":"Right","score":0.97}]}
//
// Only the first hand of a reply is used.

// errMalformedReply marks a reply that was read completely but could not be
// decoded. The stream is still in sync after it.
var errMalformedReply = errors.New("malformed tracker reply")

// writeFrame sends one length-prefixed JPEG.
func writeFrame(w io.Writer, jpeg []byte) error {
	msg := make([]byte, 4+len(jpeg))
	binary.BigEndian.PutUint32(msg, uint32(len(jpeg)))
	copy(msg[4:], jpeg)

	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readReply reads one reply line and decodes it.
func readReply(r *bufio.Reader) (*HandLandmarks, error) {
	line, err := r.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return parseResponse(line)
}

// parseResponse decodes one reply line and keeps only the first hand.
func parseResponse(line []byte) (*HandLandmarks, error) {
	var response struct {
		Hands []jsonHand `json:"hands"`
	}
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, fmt.Errorf("parse response: %w: %v", errMalformedReply, err)
	}
	if len(response.Hands) == 0 {
		return nil, nil
	}
	if n := len(response.Hands[0].Points); n != NumLandmarks {
		return nil, fmt.Errorf("parse response: %w: got %d landmarks, want %d", errMalformedReply, n, NumLandmarks)
	}

	hand := response.Hands[0].toHandLandmarks()
	return &hand, nil
}

type jsonHand struct {
	Points     []Point3D `json:"points"`
	Handedness string    `json:"handedness"`
	Score      float64   `json:"score"`
}

func (h jsonHand) toHandLandmarks() HandLandmarks {
	lm := HandLandmarks{
		Handedness: h.Handedness,
		Score:      h.Score,
	}
	copy(lm.Points[:], h.Points)
	return lm
}
