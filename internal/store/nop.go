package store

import "time"

// NopStore is a seen-ID store that remembers nothing. The check command uses
// it so a one-off poll reports every match without touching the database.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(string) (bool, error) { return false, nil }
func (s *NopStore) MarkSeen(string) error        { return nil }
func (s *NopStore) Cleanup(time.Duration) error  { return nil }
func (s *NopStore) IsEmpty() (bool, error)       { return false, nil }
