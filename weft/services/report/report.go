/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package report

import (
	"encoding/json"
	"io"
	"sync"
)

// Message is one structured progress or result record. Val carries an
// optional payload such as a derived environment block or command output.
type Message struct {
	Msg   string      `json:"msg"`
	Error string      `json:"error,omitempty"`
	Val   interface{} `json:"val,omitempty"`
}

// Reporter is a sink for Messages. Implementations decide destination and
// formatting; callers never decide log levels here.
type Reporter interface {
	Report(m Message)
}

// JSONReporter writes one JSON object per line to the underlying writer.
type JSONReporter struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{enc: json.NewEncoder(w)}
}

func (r *JSONReporter) Report(m Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// an unencodable Val is a programming error; drop the record rather
	// than fail the run
	_ = r.enc.Encode(m)
}

// Msg builds a plain progress message.
func Msg(msg string) Message {
	return Message{Msg: msg}
}

// Err builds a failure message.
func Err(msg string, err error) Message {
	m := Message{Msg: msg}
	if err != nil {
		m.Error = err.Error()
	}
	return m
}

// Value builds a message carrying a payload.
func Value(msg string, val interface{}) Message {
	return Message{Msg: msg, Val: val}
}

type discard struct{}

func (discard) Report(Message) {}

// Discard is a Reporter that drops everything. Useful in tests.
var Discard Reporter = discard{}
