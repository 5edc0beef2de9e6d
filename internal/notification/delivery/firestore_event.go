package delivery

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aiready-notifier/internal/notification/domain"
)

// FirestoreEvent is the payload Firestore document triggers deliver.
type FirestoreEvent struct {
	OldValue   FirestoreValue `json:"oldValue"`
	Value      FirestoreValue `json:"value"`
	UpdateMask struct {
		FieldPaths []string `json:"fieldPaths"`
	} `json:"updateMask"`
}

// FirestoreValue is one document snapshot inside a FirestoreEvent. Fields
// use the typed value encoding of the Firestore REST API.
type FirestoreValue struct {
	CreateTime time.Time                  `json:"createTime"`
	Fields     map[string]typedFieldValue `json:"fields"`
	Name       string                     `json:"name"`
	UpdateTime time.Time                  `json:"updateTime"`
}

// typedFieldValue holds exactly one key such as "stringValue".
type typedFieldValue map[string]json.RawMessage

func (v FirestoreValue) exists() bool {
	return v.Name != ""
}

type changeKind int

const (
	changeCreate changeKind = iota + 1
	changeUpdate
	changeDelete
)

type route struct {
	segments []string
	kind     changeKind
	trigger  domain.Trigger
}

func newRoute(template string, kind changeKind, trigger domain.Trigger) route {
	return route{segments: strings.Split(template, "/"), kind: kind, trigger: trigger}
}

var routes = []route{
	newRoute("users/{uid}", changeUpdate, domain.TriggerUserUpdated),
	newRoute("communityPosts/{postId}", changeUpdate, domain.TriggerPostUpdated),
	newRoute("communityPosts/{postId}/likes/{userId}", changeCreate, domain.TriggerPostLikeCreated),
	newRoute("communityPosts/{postId}/comments/{commentId}/likes/{userId}", changeCreate, domain.TriggerCommentLikeCreated),
	newRoute("corporate_signups/{docId}", changeCreate, domain.TriggerSignupCreated),
}

// match returns the path parameters when path fits the route template.
func (r route) match(path []string) (map[string]string, bool) {
	if len(path) != len(r.segments) {
		return nil, false
	}
	params := make(map[string]string)
	for i, seg := range r.segments {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if path[i] == "" {
				return nil, false
			}
			params[seg[1:len(seg)-1]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

// DecodeEvent turns a raw trigger payload into a ChangeEvent. The trigger
// is derived from the document path and whether the change is a create,
// update or delete.
func DecodeEvent(data []byte, eventID string) (domain.ChangeEvent, error) {
	var raw FirestoreEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.ChangeEvent{}, fmt.Errorf("%w: %v", domain.ErrMalformedEvent, err)
	}

	var kind changeKind
	name := raw.Value.Name
	switch {
	case raw.OldValue.exists() && raw.Value.exists():
		kind = changeUpdate
	case raw.Value.exists():
		kind = changeCreate
	case raw.OldValue.exists():
		kind = changeDelete
		name = raw.OldValue.Name
	default:
		return domain.ChangeEvent{}, fmt.Errorf("%w: no document in payload", domain.ErrMalformedEvent)
	}

	path := strings.Split(documentPath(name), "/")
	for _, r := range routes {
		params, ok := r.match(path)
		if !ok || r.kind != kind {
			continue
		}
		return domain.ChangeEvent{
			ID:      eventID,
			Trigger: r.trigger,
			Before:  decodeFields(raw.OldValue),
			After:   decodeFields(raw.Value),
			Params:  params,
		}, nil
	}
	return domain.ChangeEvent{}, fmt.Errorf("%w: %s", domain.ErrUnknownTrigger, name)
}

// documentPath strips the "projects/{p}/databases/{d}/documents/" prefix
// from a resource name.
func documentPath(name string) string {
	const marker = "/documents/"
	if i := strings.Index(name, marker); i >= 0 {
		return name[i+len(marker):]
	}
	return strings.Trim(name, "/")
}

func decodeFields(v FirestoreValue) domain.Document {
	if !v.exists() {
		return nil
	}
	return decodeFieldMap(v.Fields)
}

func decodeFieldMap(fields map[string]typedFieldValue) domain.Document {
	doc := make(domain.Document, len(fields))
	for key, value := range fields {
		doc[key] = decodeValue(value)
	}
	return doc
}

// decodeValue converts one typed value. Values that cannot be decoded
// become nil so readers treat them as absent.
func decodeValue(v typedFieldValue) interface{} {
	for kind, raw := range v {
		switch kind {
		case "stringValue", "referenceValue", "bytesValue":
			var s string
			if json.Unmarshal(raw, &s) == nil {
				return s
			}
		case "booleanValue":
			var b bool
			if json.Unmarshal(raw, &b) == nil {
				return b
			}
		case "integerValue":
			// int64 values are sent as JSON strings
			var n json.Number
			if json.Unmarshal(raw, &n) == nil {
				if i, err := n.Int64(); err == nil {
					return i
				}
			}
		case "doubleValue":
			var f float64
			if json.Unmarshal(raw, &f) == nil {
				return f
			}
		case "timestampValue":
			var ts time.Time
			if json.Unmarshal(raw, &ts) == nil {
				return ts
			}
		case "arrayValue":
			var arr struct {
				Values []typedFieldValue `json:"values"`
			}
			if json.Unmarshal(raw, &arr) == nil {
				out := make([]interface{}, 0, len(arr.Values))
				for _, item := range arr.Values {
					out = append(out, decodeValue(item))
				}
				return out
			}
		case "mapValue":
			var m struct {
				Fields map[string]typedFieldValue `json:"fields"`
			}
			if json.Unmarshal(raw, &m) == nil {
				return map[string]interface{}(decodeFieldMap(m.Fields))
			}
		case "geoPointValue":
			var g map[string]float64
			if json.Unmarshal(raw, &g) == nil {
				return map[string]interface{}{"latitude": g["latitude"], "longitude": g["longitude"]}
			}
		}
		return nil
	}
	return nil
}
