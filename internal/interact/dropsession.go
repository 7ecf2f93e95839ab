/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package interact

import "encoding/json"

// DropPayload describes the component being carried by a cross-container
// drag. SourceBoard is empty when the component comes from the canvas
// archive or from an external palette.
type DropPayload struct {
	ComponentID string  `json:"componentId"`
	SourceBoard string  `json:"sourceBoard,omitempty"`
	Kind        string  `json:"kind,omitempty"`
	Width       float32 `json:"width"`
	Height      float32 `json:"height"`
}

// ParseDropPayload decodes an externally-sourced drop payload. Malformed data
// is treated as no payload: ok is false and the drop should be ignored.
func ParseDropPayload(data []byte) (DropPayload, bool) {
	var p DropPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return DropPayload{}, false
	}
	if p.ComponentID == "" && p.Kind == "" {
		return DropPayload{}, false
	}
	return p, true
}

// DropSession is the explicit shared-state object for one cross-container
// drag gesture. It replaces ambient global drag state: the owner creates it
// at gesture start, hands it by reference to the interested drop targets,
// and ends it on drop or leave. Its lifetime is strictly one gesture.
type DropSession struct {
	payload DropPayload
	active  bool
}

// Begin arms the session with a payload.
func (s *DropSession) Begin(p DropPayload) {
	s.payload = p
	s.active = true
}

// Payload returns the carried payload, if the session is active.
func (s *DropSession) Payload() (DropPayload, bool) {
	if !s.active {
		return DropPayload{}, false
	}
	return s.payload, true
}

// End clears the session. Safe to call repeatedly.
func (s *DropSession) End() {
	s.payload = DropPayload{}
	s.active = false
}
