package content

import (
	"context"
	"fmt"

	"github.com/dalemusser/tujitume/internal/domain/models"
)

type entity[T any] interface {
	RecordID() string
	Clone() T
}

type patch[T any] interface {
	Apply(*T)
}

func indexOf[T entity[T]](list []T, id string) int {
	for i, v := range list {
		if v.RecordID() == id {
			return i
		}
	}
	return -1
}

// cloneAll deep-copies list. The result is never nil, so an empty
// collection is stored as [] rather than null.
func cloneAll[T entity[T]](list []T) []T {
	out := make([]T, len(list))
	for i, v := range list {
		out[i] = v.Clone()
	}
	return out
}

// normalizer is implemented by entities whose closed-set fields have defaults.
type normalizer[T any] interface {
	Normalized() T
}

func normalize[T any](v T) T {
	if n, ok := any(v).(normalizer[T]); ok {
		return n.Normalized()
	}
	return v
}

// normalizeAll is cloneAll with every record normalized.
func normalizeAll[T entity[T]](list []T) []T {
	out := cloneAll(list)
	for i, v := range out {
		out[i] = normalize(v)
	}
	return out
}

func add[T entity[T]](ctx context.Context, s *Store, list *[]T, v T, setID func(*T, string), aggregate string) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	v = normalize(v.Clone())
	setID(&v, models.NewID())
	*list = append(*list, v)
	s.committed(ctx, aggregate, "add")
	return v.Clone()
}

func update[T entity[T], P patch[T]](ctx context.Context, s *Store, list *[]T, id string, p P, aggregate string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(*list, id)
	if i < 0 {
		s.metrics.Mutation(aggregate, "update", models.NotFound.String())
		return models.NotFound
	}
	v := (*list)[i].Clone()
	p.Apply(&v)
	(*list)[i] = normalize(v)
	s.committed(ctx, aggregate, "update")
	return models.Found
}

func remove[T entity[T]](ctx context.Context, s *Store, list *[]T, id string, aggregate string) models.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(*list, id)
	if i < 0 {
		s.metrics.Mutation(aggregate, "delete", models.NotFound.String())
		return models.NotFound
	}
	*list = append((*list)[:i:i], (*list)[i+1:]...)
	s.committed(ctx, aggregate, "delete")
	return models.Found
}

func get[T entity[T]](s *Store, list *[]T, id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(*list, id); i >= 0 {
		return (*list)[i].Clone(), true
	}
	var zero T
	return zero, false
}

func all[T entity[T]](s *Store, list *[]T) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(*list)
}

func filter[T entity[T]](s *Store, list *[]T, keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []T{}
	for _, v := range *list {
		if keep(v) {
			out = append(out, v.Clone())
		}
	}
	return out
}

func checkUnique[T entity[T]](list []T, aggregate string) error {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		id := v.RecordID()
		if id == "" {
			return fmt.Errorf("%s: record without id", aggregate)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%s: duplicate id %q", aggregate, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func checkIDs(snap Snapshot) error {
	checks := []error{
		checkUnique(snap.TeamMembers, "teamMembers"),
		checkUnique(snap.NewsArticles, "newsArticles"),
		checkUnique(snap.Events, "events"),
		checkUnique(snap.Partnerships, "partnerships"),
		checkUnique(snap.Testimonials, "testimonials"),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

// Team members

func (s *Store) AddTeamMember(ctx context.Context, m models.TeamMember) models.TeamMember {
	return add(ctx, s, &s.data.TeamMembers, m, func(v *models.TeamMember, id string) { v.ID = id }, "team")
}

func (s *Store) UpdateTeamMember(ctx context.Context, id string, p models.TeamMemberPatch) models.Result {
	return update(ctx, s, &s.data.TeamMembers, id, p, "team")
}

func (s *Store) DeleteTeamMember(ctx context.Context, id string) models.Result {
	return remove(ctx, s, &s.data.TeamMembers, id, "team")
}

func (s *Store) GetTeamMember(id string) (models.TeamMember, bool) {
	return get(s, &s.data.TeamMembers, id)
}

// TeamMembers returns all team members in insertion order.
func (s *Store) TeamMembers() []models.TeamMember {
	return all(s, &s.data.TeamMembers)
}

// News articles

func (s *Store) AddNewsArticle(ctx context.Context, a models.NewsArticle) models.NewsArticle {
	return add(ctx, s, &s.data.NewsArticles, a, func(v *models.NewsArticle, id string) { v.ID = id }, "news")
}

func (s *Store) UpdateNewsArticle(ctx context.Context, id string, p models.NewsArticlePatch) models.Result {
	return update(ctx, s, &s.data.NewsArticles, id, p, "news")
}

func (s *Store) DeleteNewsArticle(ctx context.Context, id string) models.Result {
	return remove(ctx, s, &s.data.NewsArticles, id, "news")
}

func (s *Store) GetNewsArticle(id string) (models.NewsArticle, bool) {
	return get(s, &s.data.NewsArticles, id)
}

func (s *Store) NewsArticles() []models.NewsArticle {
	return all(s, &s.data.NewsArticles)
}

// PublishedArticles returns the published articles in insertion order.
func (s *Store) PublishedArticles() []models.NewsArticle {
	return filter(s, &s.data.NewsArticles, func(a models.NewsArticle) bool {
		return a.Status == models.ArticlePublished
	})
}

// Events

func (s *Store) AddEvent(ctx context.Context, e models.Event) models.Event {
	return add(ctx, s, &s.data.Events, e, func(v *models.Event, id string) { v.ID = id }, "events")
}

func (s *Store) UpdateEvent(ctx context.Context, id string, p models.EventPatch) models.Result {
	return update(ctx, s, &s.data.Events, id, p, "events")
}

func (s *Store) DeleteEvent(ctx context.Context, id string) models.Result {
	return remove(ctx, s, &s.data.Events, id, "events")
}

func (s *Store) GetEvent(id string) (models.Event, bool) {
	return get(s, &s.data.Events, id)
}

func (s *Store) Events() []models.Event {
	return all(s, &s.data.Events)
}

// UpcomingEvents returns the events with status upcoming in insertion order.
func (s *Store) UpcomingEvents() []models.Event {
	return filter(s, &s.data.Events, func(e models.Event) bool {
		return e.Status == models.EventUpcoming
	})
}

// Partnerships

func (s *Store) AddPartnership(ctx context.Context, p models.Partnership) models.Partnership {
	return add(ctx, s, &s.data.Partnerships, p, func(v *models.Partnership, id string) { v.ID = id }, "partnerships")
}

func (s *Store) UpdatePartnership(ctx context.Context, id string, p models.PartnershipPatch) models.Result {
	return update(ctx, s, &s.data.Partnerships, id, p, "partnerships")
}

func (s *Store) DeletePartnership(ctx context.Context, id string) models.Result {
	return remove(ctx, s, &s.data.Partnerships, id, "partnerships")
}

func (s *Store) GetPartnership(id string) (models.Partnership, bool) {
	return get(s, &s.data.Partnerships, id)
}

func (s *Store) Partnerships() []models.Partnership {
	return all(s, &s.data.Partnerships)
}

// Testimonials

func (s *Store) AddTestimonial(ctx context.Context, t models.Testimonial) models.Testimonial {
	return add(ctx, s, &s.data.Testimonials, t, func(v *models.Testimonial, id string) { v.ID = id }, "testimonials")
}

func (s *Store) UpdateTestimonial(ctx context.Context, id string, p models.TestimonialPatch) models.Result {
	return update(ctx, s, &s.data.Testimonials, id, p, "testimonials")
}

func (s *Store) DeleteTestimonial(ctx context.Context, id string) models.Result {
	return remove(ctx, s, &s.data.Testimonials, id, "testimonials")
}

func (s *Store) GetTestimonial(id string) (models.Testimonial, bool) {
	return get(s, &s.data.Testimonials, id)
}

func (s *Store) Testimonials() []models.Testimonial {
	return all(s, &s.data.Testimonials)
}

// FeaturedTestimonials returns the featured testimonials in insertion order.
func (s *Store) FeaturedTestimonials() []models.Testimonial {
	return filter(s, &s.data.Testimonials, func(t models.Testimonial) bool {
		return t.Featured
	})
}
