package repository

import (
	"context"
	"iter"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GoSim-25-26J-441/portfolio/internal/projects/domain"
)

// FirestoreStore keeps projects as documents of one Firestore collection.
// Both timestamps use Firestore's server clock.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection}
}

func (s *FirestoreStore) List(ctx context.Context) iter.Seq2[domain.Project, error] {
	return oneShot(func(yield func(domain.Project, error) bool) {
		docs := s.col().OrderBy("ordem", firestore.Asc).Documents(ctx)
		defer docs.Stop()

		for {
			snap, err := docs.Next()
			if err == iterator.Done {
				return
			}
			if err != nil {
				yield(domain.Project{}, storeErr("list projects", err))
				return
			}
			p, err := decodeProject(snap)
			if err != nil {
				yield(domain.Project{}, storeErr("decode project", err))
				return
			}
			if !yield(p, nil) {
				return
			}
		}
	})
}

func (s *FirestoreStore) Get(ctx context.Context, id string) (*domain.Project, error) {
	if id == "" {
		return nil, domain.ErrNotFound
	}
	snap, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, domain.ErrNotFound
		}
		return nil, storeErr("get project", err)
	}
	p, err := decodeProject(snap)
	if err != nil {
		return nil, storeErr("decode project", err)
	}
	return &p, nil
}

func (s *FirestoreStore) Create(ctx context.Context, in domain.ProjectInput) (string, error) {
	data := projectFields(in)
	data["dataCriacao"] = firestore.ServerTimestamp
	data["dataAtualizacao"] = firestore.ServerTimestamp

	ref, _, err := s.col().Add(ctx, data)
	if err != nil {
		return "", storeErr("create project", err)
	}
	return ref.ID, nil
}

// Update rewrites every user field and dataAtualizacao; dataCriacao is left
// untouched. A missing document is reported as ErrNotFound.
func (s *FirestoreStore) Update(ctx context.Context, id string, in domain.ProjectInput) error {
	if id == "" {
		return domain.ErrNotFound
	}
	updates := []firestore.Update{
		{Path: "titulo", Value: in.Title},
		{Path: "descricao", Value: in.Description},
		{Path: "ordem", Value: in.Order},
		{Path: "link", Value: in.Link},
		{Path: "icon", Value: in.Icon},
		{Path: "color", Value: in.Color},
		{Path: "tecnologias", Value: technologies(in)},
		{Path: "dataAtualizacao", Value: firestore.ServerTimestamp},
	}
	if _, err := s.col().Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return storeErr("update project", err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if _, err := s.col().Doc(id).Delete(ctx); err != nil {
		return storeErr("delete project", err)
	}
	return nil
}

func (s *FirestoreStore) col() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func projectFields(in domain.ProjectInput) map[string]interface{} {
	return map[string]interface{}{
		"titulo":      in.Title,
		"descricao":   in.Description,
		"ordem":       in.Order,
		"link":        in.Link,
		"icon":        in.Icon,
		"color":       in.Color,
		"tecnologias": technologies(in),
	}
}

// technologies never stores a null array.
func technologies(in domain.ProjectInput) []string {
	if in.Technologies == nil {
		return []string{}
	}
	return in.Technologies
}

func decodeProject(snap *firestore.DocumentSnapshot) (domain.Project, error) {
	var p domain.Project
	if err := snap.DataTo(&p); err != nil {
		return domain.Project{}, err
	}
	p.ID = snap.Ref.ID
	return p, nil
}

// Ping reads at most one document of the collection.
func (s *FirestoreStore) Ping(ctx context.Context) error {
	docs := s.col().Limit(1).Documents(ctx)
	defer docs.Stop()
	if _, err := docs.Next(); err != nil && err != iterator.Done {
		return storeErr("ping", err)
	}
	return nil
}
