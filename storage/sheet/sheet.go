// Package sheet defines the tabular wire model shared by the remote
// backend client and the portal server: one named tab per entity kind,
// rows as flat JSON objects, and composite list attributes carried as a
// single JSON-encoded string cell (the wire never nests arrays).
package sheet

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Tab names, one per entity kind.
const (
	TabUsers         = "users"
	TabClasses       = "classes"
	TabStudents      = "students"
	TabParents       = "parents"
	TabAttendance    = "attendance"
	TabBehavior      = "behavior"
	TabAnnouncements = "announcements"
	TabDocuments     = "documents"
	TabTasks         = "tasks"
	TabTaskReplies   = "taskReplies"
	TabThreads       = "messageThreads"
	TabMessages      = "messages"
	TabQuestions     = "questions"
)

// listFields maps a tab to the typed list attributes that are flattened to
// "<field>Json" string cells on the wire.
var listFields = map[string][]string{
	TabQuestions:   {"options"},
	TabTaskReplies: {"attachments"},
	TabThreads:     {"participants"},
}

// Row is one tab row as transmitted: flat keys, scalar values, list
// attributes JSON-encoded under their "<field>Json" key.
type Row map[string]interface{}

func (r Row) ID() string { return r.Str("id") }

// Str returns the named cell as a string, or "" when absent or non-string.
func (r Row) Str(key string) string {
	s, _ := r[key].(string)
	return s
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge overlays the cells present in patch onto a copy of r. The server's
// update verb has these semantics: only transmitted cells change.
func (r Row) Merge(patch Row) Row {
	out := r.Clone()
	for k, v := range patch {
		out[k] = v
	}
	return out
}

// Flatten converts a domain entity to its wire row, JSON-encoding the
// tab's list attributes into single string cells.
func Flatten(tab string, entity interface{}) (Row, error) {
	raw, err := json.Marshal(entity)
	if err != nil {
		return nil, errors.Wrapf(err, "flattening %s row", tab)
	}
	var row Row
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, errors.Wrapf(err, "flattening %s row", tab)
	}
	for _, fld := range listFields[tab] {
		val, ok := row[fld]
		if !ok || val == nil {
			val = []interface{}{}
		}
		enc, err := json.Marshal(val)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding %s.%s", tab, fld)
		}
		row[fld+"Json"] = string(enc)
		delete(row, fld)
	}
	return row, nil
}

// Expand converts a wire row back into the typed entity pointed to by out,
// parsing the tab's JSON-encoded string cells into real lists first. A
// missing or empty "<field>Json" cell expands to an empty list.
func Expand(tab string, row Row, out interface{}) error {
	row = row.Clone()
	for _, fld := range listFields[tab] {
		var items []interface{}
		if s := row.Str(fld + "Json"); s != "" {
			if err := json.Unmarshal([]byte(s), &items); err != nil {
				return errors.Wrapf(err, "parsing %s.%sJson", tab, fld)
			}
		}
		row[fld] = items
		delete(row, fld+"Json")
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return errors.Wrapf(err, "expanding %s row", tab)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "expanding %s row", tab)
	}
	return nil
}
