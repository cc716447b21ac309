package domain

// Document is an untyped entity row as it travels through the generic
// resource API. The only structural requirement is a stable "_id".
type Document map[string]any

const idField = "_id"

func (d Document) ID() string {
	id, _ := d[idField].(string)
	return id
}

func (d Document) clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

type DocumentUpdate struct {
	ID   string   `json:"id"`
	Data Document `json:"updateData"`
}

// SetField applies the same value for field across the whole working
// set. Total map, no filtering.
func SetField(docs []Document, field string, value any) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		c := d.clone()
		c[field] = value
		out[i] = c
	}
	return out
}

// UpdatePayload splits each document's _id out as the routing key and
// strips it from the update body. Documents without an id fail the
// whole batch; nothing is worth submitting half-keyed.
func UpdatePayload(docs []Document) ([]DocumentUpdate, error) {
	out := make([]DocumentUpdate, 0, len(docs))
	for _, d := range docs {
		id := d.ID()
		if id == "" {
			return nil, ErrMissingID
		}
		data := d.clone()
		delete(data, idField)
		out = append(out, DocumentUpdate{ID: id, Data: data})
	}
	return out, nil
}

// DeletePayload projects the working set down to its ids.
func DeletePayload(docs []Document) ([]string, error) {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		id := d.ID()
		if id == "" {
			return nil, ErrMissingID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
