// Package jsonstore keeps a family in a JSON document validated against an
// embedded JSON Schema (people.schema.json):
//
//	{
//	  "schema_version": 1,
//	  "family": "smith",
//	  "exported_at": "2024-01-01T00:00:00Z",
//	  "people": [
//	    {
//	      "id": "1",
//	      "first_name": "Ada",
//	      "middle_names": "",
//	      "last_name": "King",
//	      "is_male": "f",
//	      "birth_day": "10", "birth_month": "12", "birth_year": "1815",
//	      "death_day": "27", "death_month": "11", "death_year": "1852",
//	      "mother_id": "?", "father_id": "?"
//	    }
//	  ]
//	}
//
// Values are the same tokens the delimited text backend stores, so "?" marks
// an unknown value and "" an absent one. The schema only checks shape; the
// record codec still validates every value on load.
//
// Documents are written with 2-space indentation and a trailing newline.
package jsonstore
