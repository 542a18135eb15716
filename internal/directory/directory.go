package directory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"coachcal-service/internal/models"
	"coachcal-service/pkg/response"
)

// ClientSource supplies the roster, typically the clients collection of
// the document store.
type ClientSource interface {
	ListClients(ctx context.Context) ([]models.Client, error)
}

// Directory is the read-only client roster handed to the booking workflow.
// It holds an in-memory snapshot; Refresh swaps it wholesale.
type Directory struct {
	mu      sync.RWMutex
	clients []models.Client
}

func New(clients []models.Client) *Directory {
	d := &Directory{}
	d.replace(clients)
	return d
}

// Load builds a directory from the source's current roster.
func Load(ctx context.Context, src ClientSource) (*Directory, error) {
	const op = "directory.Load"

	clients, err := src.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return New(clients), nil
}

func (d *Directory) Refresh(ctx context.Context, src ClientSource) error {
	const op = "directory.Refresh"

	clients, err := src.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	d.replace(clients)
	return nil
}

func (d *Directory) replace(clients []models.Client) {
	snapshot := make([]models.Client, len(clients))
	copy(snapshot, clients)

	d.mu.Lock()
	d.clients = snapshot
	d.mu.Unlock()
}

// Get returns the client with the given id.
func (d *Directory) Get(id string) (*models.Client, error) {
	const op = "directory.Get"

	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, c := range d.clients {
		if c.ID == id {
			client := c
			return &client, nil
		}
	}

	return nil, fmt.Errorf("%s: %w", op, response.ErrNotFound)
}

// List returns a copy of the full roster.
func (d *Directory) List() []models.Client {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.Client, len(d.clients))
	copy(out, d.clients)
	return out
}

// Search returns clients whose name or phone contains q,
// case-insensitively. An empty query returns the full roster.
func (d *Directory) Search(q string) []models.Client {
	if q == "" {
		return d.List()
	}

	q = strings.ToLower(q)

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []models.Client
	for _, c := range d.clients {
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Phone), q) {
			out = append(out, c)
		}
	}
	return out
}
