package directory

import (
	"context"
	"errors"
	"testing"

	"coachcal-service/internal/models"
	"coachcal-service/pkg/response"
)

func roster() []models.Client {
	return []models.Client{
		{ID: "1", Name: "Sarah Johnson", Phone: "+1-555-0101", CoachID: "coach1", Status: models.ClientActive},
		{ID: "2", Name: "Michael Chen", Phone: "+1-555-0102", CoachID: "coach1", Status: models.ClientActive},
		{ID: "3", Name: "Emily Rodriguez", Phone: "+1-555-0103", CoachID: "coach2", Status: models.ClientProspect},
	}
}

func TestSearch(t *testing.T) {
	d := New(roster())

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case-insensitive name", "sarah", []string{"1"}},
		{"partial name", "Ch", []string{"2"}},
		{"phone substring", "0103", []string{"3"}},
		{"empty query returns all", "", []string{"1", "2", "3"}},
		{"no match", "zelda", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Search(tt.query)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d clients, want %d", len(got), len(tt.want))
			}
			for i, c := range got {
				if c.ID != tt.want[i] {
					t.Errorf("result %d = client %s, want %s", i, c.ID, tt.want[i])
				}
			}
		})
	}
}

func TestGet(t *testing.T) {
	d := New(roster())

	client, err := d.Get("2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Name != "Michael Chen" {
		t.Errorf("got client %q, want Michael Chen", client.Name)
	}

	if _, err := d.Get("missing"); !errors.Is(err, response.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

type staticSource struct {
	clients []models.Client
	err     error
}

func (s staticSource) ListClients(context.Context) ([]models.Client, error) {
	return s.clients, s.err
}

func TestLoadAndRefresh(t *testing.T) {
	d, err := Load(context.Background(), staticSource{clients: roster()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.List()) != 3 {
		t.Fatalf("got %d clients after load, want 3", len(d.List()))
	}

	updated := append(roster(), models.Client{ID: "4", Name: "Lisa Wang", Phone: "+1-555-0105"})
	if err := d.Refresh(context.Background(), staticSource{clients: updated}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.List()) != 4 {
		t.Errorf("got %d clients after refresh, want 4", len(d.List()))
	}

	srcErr := errors.New("store down")
	if err := d.Refresh(context.Background(), staticSource{err: srcErr}); !errors.Is(err, srcErr) {
		t.Errorf("got %v, want wrapped source error", err)
	}
	if len(d.List()) != 4 {
		t.Errorf("failed refresh replaced the roster")
	}
}
