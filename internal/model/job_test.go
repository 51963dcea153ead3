package model

import (
	"encoding/json"
	"testing"
)

func TestJobJSONKeys(t *testing.T) {
	job := Job{
		ID:           "abc",
		Title:        "Go Engineer",
		Company:      "Acme",
		Location:     "Remote",
		CompanyLogo:  "https://acme.example/logo.png",
		Requirements: []string{"Go"},
		IsSaved:      true,
	}
	data, err := json.Marshal(job)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"id", "title", "company", "location", "logo", "requirements", "isSaved"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q in %s", key, data)
		}
	}
	for _, key := range []string{"salary", "description", "type", "posted", "url", "benefits", "ID", "CompanyLogo"} {
		if _, ok := got[key]; ok {
			t.Errorf("unexpected key %q in %s", key, data)
		}
	}

	var back Job
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if back.CompanyLogo != job.CompanyLogo || !back.IsSaved {
		t.Errorf("decoded job = %+v", back)
	}
}
