package content_test

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/dalemusser/tujitume/internal/app/store/content"
	"github.com/dalemusser/tujitume/internal/app/store/slots"
	"github.com/dalemusser/tujitume/internal/app/system/metrics"
	"github.com/dalemusser/tujitume/internal/domain/models"
	"github.com/dalemusser/tujitume/internal/testutil"
	"go.uber.org/zap"
)

func ptr[T any](v T) *T { return &v }

// newStore returns an initialized store over st, emptied of its defaults.
func newStore(t *testing.T, ctx context.Context, st slots.Store) *content.Store {
	t.Helper()
	s := content.New(st, zap.NewNop())
	s.Init(ctx)
	if err := s.Import(ctx, content.Snapshot{}); err != nil {
		t.Fatalf("Import empty: %v", err)
	}
	return s
}

func TestAddTeamMember_UniqueIDs(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		m := s.AddTeamMember(ctx, testutil.TeamMember("Member"))
		if m.ID == "" {
			t.Fatal("AddTeamMember returned empty id")
		}
		if seen[m.ID] {
			t.Fatalf("duplicate id %q after %d adds", m.ID, i)
		}
		seen[m.ID] = true
	}
	if got := len(s.TeamMembers()); got != 50 {
		t.Errorf("TeamMembers: got %d, want 50", got)
	}
}

func TestAdd_IgnoresCallerID(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))

	in := testutil.Partnership("Partner")
	in.ID = "chosen"
	first := s.AddPartnership(ctx, in)
	second := s.AddPartnership(ctx, in)

	if first.ID == "chosen" || second.ID == "chosen" {
		t.Errorf("caller id kept: %q, %q", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Errorf("ids collide: %q", first.ID)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	s := newStore(t, ctx, st)

	a := s.AddTeamMember(ctx, testutil.TeamMember("Alice"))
	b := s.AddTeamMember(ctx, testutil.TeamMember("Bob"))
	s.AddTeamMember(ctx, testutil.TeamMember("Carol"))
	s.UpdateTeamMember(ctx, a.ID, models.TeamMemberPatch{Role: ptr("Director"), Expertise: ptr([]string{"Finance", "Ops"})})
	s.DeleteTeamMember(ctx, b.ID)

	art := s.AddNewsArticle(ctx, testutil.Article("Launch", models.ArticleDraft))
	s.UpdateNewsArticle(ctx, art.ID, models.NewsArticlePatch{Status: ptr(models.ArticlePublished), Views: ptr(12)})
	s.AddEvent(ctx, testutil.Event("Workshop", models.EventUpcoming))
	s.AddPartnership(ctx, testutil.Partnership("County"))
	s.AddTestimonial(ctx, testutil.Testimonial("Mercy", true))
	s.UpdateSiteSettings(ctx, models.SiteSettingsPatch{Tagline: ptr("New tagline")})

	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := content.New(st, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	want, got := s.Snapshot(), reloaded.Snapshot()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded snapshot differs:\n got %+v\nwant %+v", got, want)
	}
	names := []string{}
	for _, m := range got.TeamMembers {
		names = append(names, m.Name)
	}
	if !reflect.DeepEqual(names, []string{"Alice", "Carol"}) {
		t.Errorf("team order: got %v, want [Alice Carol]", names)
	}
}

func TestMutationsPersistWithoutExplicitSave(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	s := newStore(t, ctx, st)

	e := s.AddEvent(ctx, testutil.Event("Clean-up day", models.EventUpcoming))

	reloaded := content.New(st, zap.NewNop())
	reloaded.Init(ctx)
	got, ok := reloaded.GetEvent(e.ID)
	if !ok {
		t.Fatalf("GetEvent(%q) after reload: not found", e.ID)
	}
	if got.Title != "Clean-up day" {
		t.Errorf("Title: got %q, want %q", got.Title, "Clean-up day")
	}
}

func TestUpdateTestimonial_MissingIDIsNoop(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	flaky := testutil.NewFlakySlots(testutil.SetupTestSlots(t))
	s := newStore(t, ctx, flaky)
	s.AddTestimonial(ctx, testutil.Testimonial("One", false))
	s.AddTestimonial(ctx, testutil.Testimonial("Two", true))

	before := s.Testimonials()
	writes := flaky.Writes()

	res := s.UpdateTestimonial(ctx, "nonexistent-id", models.TestimonialPatch{Name: ptr("Changed"), Featured: ptr(true)})

	if res != models.NotFound {
		t.Errorf("result: got %v, want %v", res, models.NotFound)
	}
	if after := s.Testimonials(); !reflect.DeepEqual(after, before) {
		t.Errorf("testimonials changed:\n got %+v\nwant %+v", after, before)
	}
	if flaky.Writes() != writes {
		t.Errorf("writes: got %d, want %d (no persist on not found)", flaky.Writes(), writes)
	}
}

func TestDelete(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))
	a := s.AddPartnership(ctx, testutil.Partnership("A"))
	b := s.AddPartnership(ctx, testutil.Partnership("B"))

	if res := s.DeletePartnership(ctx, a.ID); res != models.Found {
		t.Errorf("delete existing: got %v, want %v", res, models.Found)
	}
	if res := s.DeletePartnership(ctx, a.ID); res != models.NotFound {
		t.Errorf("delete twice: got %v, want %v", res, models.NotFound)
	}
	list := s.Partnerships()
	if len(list) != 1 || list[0].ID != b.ID {
		t.Errorf("remaining: got %+v, want only %q", list, b.ID)
	}
	if _, ok := s.GetPartnership(a.ID); ok {
		t.Error("GetPartnership after delete: want not found")
	}
}

func TestUpdate_ShallowMerge(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))
	m := s.AddTeamMember(ctx, testutil.TeamMember("Alice"))

	res := s.UpdateTeamMember(ctx, m.ID, models.TeamMemberPatch{
		Bio:      ptr("Updated bio"),
		IsActive: ptr(false),
	})
	if res != models.Found {
		t.Fatalf("UpdateTeamMember: got %v, want %v", res, models.Found)
	}

	got, _ := s.GetTeamMember(m.ID)
	if got.Bio != "Updated bio" {
		t.Errorf("Bio: got %q, want %q", got.Bio, "Updated bio")
	}
	if got.IsActive {
		t.Error("IsActive: got true, want false")
	}
	if got.Name != "Alice" || got.Role != m.Role || got.ID != m.ID {
		t.Errorf("untouched fields changed: got %+v", got)
	}
	if !reflect.DeepEqual(got.Achievements, m.Achievements) {
		t.Errorf("Achievements: got %v, want %v", got.Achievements, m.Achievements)
	}
}

func TestPublishedArticles_Filter(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))

	s.AddNewsArticle(ctx, testutil.Article("draft", models.ArticleDraft))
	p1 := s.AddNewsArticle(ctx, testutil.Article("first", models.ArticlePublished))
	p2 := s.AddNewsArticle(ctx, testutil.Article("second", models.ArticlePublished))
	s.AddNewsArticle(ctx, testutil.Article("scheduled", models.ArticleScheduled))

	got := s.PublishedArticles()
	if len(got) != 2 {
		t.Fatalf("PublishedArticles: got %d, want 2", len(got))
	}
	if got[0].ID != p1.ID || got[1].ID != p2.ID {
		t.Errorf("order: got [%s %s], want [%s %s]", got[0].Title, got[1].Title, p1.Title, p2.Title)
	}
}

func TestDerivedFilters(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))

	s.AddEvent(ctx, testutil.Event("done", models.EventCompleted))
	up := s.AddEvent(ctx, testutil.Event("soon", models.EventUpcoming))
	s.AddEvent(ctx, testutil.Event("now", models.EventOngoing))
	s.AddTestimonial(ctx, testutil.Testimonial("plain", false))
	feat := s.AddTestimonial(ctx, testutil.Testimonial("star", true))

	if got := s.UpcomingEvents(); len(got) != 1 || got[0].ID != up.ID {
		t.Errorf("UpcomingEvents: got %+v, want only %q", got, up.ID)
	}
	if got := s.FeaturedTestimonials(); len(got) != 1 || got[0].ID != feat.ID {
		t.Errorf("FeaturedTestimonials: got %+v, want only %q", got, feat.ID)
	}

	c := s.Counts()
	if c.Events != 3 || c.UpcomingEvents != 1 || c.Testimonials != 2 || c.FeaturedTestimonials != 1 {
		t.Errorf("Counts: got %+v", c)
	}
}

func TestSiteSettings_UpdateMerges(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := content.New(testutil.SetupTestSlots(t), zap.NewNop())
	s.Init(ctx)

	before := s.SiteSettings()
	got := s.UpdateSiteSettings(ctx, models.SiteSettingsPatch{
		Phone:       ptr("+254 799 000 000"),
		SocialMedia: &models.SocialLinks{Facebook: "https://facebook.com/new"},
	})

	if got.Phone != "+254 799 000 000" {
		t.Errorf("Phone: got %q, want %q", got.Phone, "+254 799 000 000")
	}
	if got.OrganizationName != before.OrganizationName {
		t.Errorf("OrganizationName: got %q, want %q", got.OrganizationName, before.OrganizationName)
	}
	// social links are replaced as a whole
	if got.SocialMedia.Twitter != "" {
		t.Errorf("SocialMedia.Twitter: got %q, want empty", got.SocialMedia.Twitter)
	}
}

func TestInit_DefaultsOnFirstRun(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := content.New(testutil.SetupTestSlots(t), zap.NewNop())
	s.Init(ctx)

	if got := s.SiteSettings().OrganizationName; got != models.DefaultOrganizationName {
		t.Errorf("OrganizationName: got %q, want %q", got, models.DefaultOrganizationName)
	}
	if len(s.TeamMembers()) == 0 {
		t.Error("TeamMembers: want built-in defaults")
	}
}

func TestLoad_MissingAggregatesKeepDefaults(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	if err := st.Put(ctx, slots.KeyContent, []byte(`{"teamMembers":[{"id":"x","name":"Only"}]}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := content.New(st, zap.NewNop())
	s.Init(ctx)

	team := s.TeamMembers()
	if len(team) != 1 || team[0].Name != "Only" {
		t.Errorf("TeamMembers: got %+v, want the stored one", team)
	}
	defaults := content.Defaults()
	if got := s.Events(); !reflect.DeepEqual(got, defaults.Events) {
		t.Errorf("Events: got %+v, want defaults", got)
	}
	if got := s.SiteSettings(); got != defaults.SiteSettings {
		t.Errorf("SiteSettings: got %+v, want defaults", got)
	}
}

func TestLoad_BadSnapshotLeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `{{{`},
		{"invalid article status", `{"newsArticles":[{"id":"1","status":"bogus"}],"teamMembers":[]}`},
		{"invalid partnership category", `{"partnerships":[{"id":"1","category":"other","status":"active"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := testutil.TestContext()
			defer cancel()
			st := testutil.SetupTestSlots(t)
			if err := st.Put(ctx, slots.KeyContent, []byte(tt.payload)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			s := content.New(st, zap.NewNop())

			if err := s.Load(ctx); err == nil {
				t.Fatal("Load: want error")
			}
			if got := s.Snapshot(); !reflect.DeepEqual(got, content.Defaults()) {
				t.Errorf("state changed after failed load: %+v", got)
			}
		})
	}
}

func TestPersistFailure_MutationStands(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	flaky := testutil.NewFlakySlots(testutil.SetupTestSlots(t))
	m := metrics.New()
	s := content.New(flaky, zap.NewNop(), content.WithMetrics(m))
	s.Init(ctx)

	flaky.FailWrites(true)
	added := s.AddTeamMember(ctx, testutil.TeamMember("Survivor"))

	if _, ok := s.GetTeamMember(added.ID); !ok {
		t.Fatal("in-memory add lost after persistence failure")
	}
	if err := s.Save(ctx); err == nil {
		t.Error("Save with failing slot: want error")
	}

	// the slot still has nothing; a fresh load sees the defaults
	flaky.FailWrites(false)
	reloaded := content.New(flaky, zap.NewNop())
	reloaded.Init(ctx)
	if _, ok := reloaded.GetTeamMember(added.ID); ok {
		t.Error("reloaded store has a record that was never persisted")
	}
}

func TestDispose_DetachesStore(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	flaky := testutil.NewFlakySlots(testutil.SetupTestSlots(t))
	s := content.New(flaky, zap.NewNop())

	s.AddEvent(ctx, testutil.Event("before init", models.EventUpcoming))
	if flaky.Writes() != 0 {
		t.Errorf("writes before Init: got %d, want 0", flaky.Writes())
	}

	s.Init(ctx)
	if err := s.Dispose(ctx); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	if flaky.Writes() != 1 {
		t.Errorf("writes after Dispose: got %d, want 1", flaky.Writes())
	}

	s.AddEvent(ctx, testutil.Event("after dispose", models.EventUpcoming))
	if flaky.Writes() != 1 {
		t.Errorf("writes after detached mutation: got %d, want 1", flaky.Writes())
	}
}

func TestImport_RejectsDuplicateIDs(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := content.New(testutil.SetupTestSlots(t), zap.NewNop())

	dup := testutil.Event("e", models.EventUpcoming)
	dup.ID = "same"
	err := s.Import(ctx, content.Snapshot{Events: []models.Event{dup, dup}})
	if err == nil {
		t.Fatal("Import: want duplicate id error")
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, content.Defaults()) {
		t.Error("state changed after rejected import")
	}
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := newStore(t, ctx, testutil.SetupTestSlots(t))
	m := s.AddTeamMember(ctx, testutil.TeamMember("Alice"))

	list := s.TeamMembers()
	list[0].Name = "Mallory"
	list[0].Expertise[0] = "Tampering"

	got, _ := s.GetTeamMember(m.ID)
	if got.Name != "Alice" || got.Expertise[0] != "Mentorship" {
		t.Errorf("store mutated through returned copy: %+v", got)
	}
}

func TestSnapshotJSONLayout(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	s := content.New(st, zap.NewNop())
	s.Init(ctx)
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, ok, err := st.Get(ctx, slots.KeyContent)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for _, key := range []string{"teamMembers", "newsArticles", "events", "partnerships", "testimonials", "siteSettings"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("snapshot missing field %q", key)
		}
	}
}

func TestAdd_ZeroEnumsGetDefaultsAndReload(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	s := newStore(t, ctx, st)

	s.AddTeamMember(ctx, testutil.TeamMember("Alice"))
	art := s.AddNewsArticle(ctx, models.NewsArticle{Title: "no status"})
	ev := s.AddEvent(ctx, models.Event{Title: "no status"})
	p := s.AddPartnership(ctx, models.Partnership{Name: "no category"})

	if art.Status != models.ArticleDraft {
		t.Errorf("article status: got %q, want %q", art.Status, models.ArticleDraft)
	}
	if ev.Status != models.EventUpcoming {
		t.Errorf("event status: got %q, want %q", ev.Status, models.EventUpcoming)
	}
	if p.Category != models.PartnerCommunity || p.Status != models.PartnershipActive {
		t.Errorf("partnership: got category %q status %q", p.Category, p.Status)
	}

	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reloaded := content.New(st, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := reloaded.Snapshot(), s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded snapshot differs:\n got %+v\nwant %+v", got, want)
	}
}

func TestUpdate_EmptyEnumLeavesValue(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	s := newStore(t, ctx, st)

	art := s.AddNewsArticle(ctx, testutil.Article("Launch", models.ArticlePublished))
	ev := s.AddEvent(ctx, testutil.Event("Workshop", models.EventOngoing))
	p := s.AddPartnership(ctx, testutil.Partnership("County"))

	s.UpdateNewsArticle(ctx, art.ID, models.NewsArticlePatch{Status: ptr(models.ArticleStatus(""))})
	s.UpdateEvent(ctx, ev.ID, models.EventPatch{Status: ptr(models.EventStatus("cancelled"))})
	s.UpdatePartnership(ctx, p.ID, models.PartnershipPatch{
		Category: ptr(models.PartnershipCategory("")),
		Status:   ptr(models.PartnershipCompleted),
	})

	if got, _ := s.GetNewsArticle(art.ID); got.Status != models.ArticlePublished {
		t.Errorf("article status: got %q, want %q", got.Status, models.ArticlePublished)
	}
	if got, _ := s.GetEvent(ev.ID); got.Status != models.EventOngoing {
		t.Errorf("event status: got %q, want %q", got.Status, models.EventOngoing)
	}
	got, _ := s.GetPartnership(p.ID)
	if got.Category != models.PartnerFunding || got.Status != models.PartnershipCompleted {
		t.Errorf("partnership: got category %q status %q", got.Category, got.Status)
	}

	reloaded := content.New(st, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Snapshot(), s.Snapshot()) {
		t.Error("reloaded snapshot differs after updates")
	}
}

func TestLoad_MissingStatusGetsDefault(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	payload := `{"newsArticles":[{"id":"a","title":"old"}],"events":[{"id":"e","title":"old"}],"partnerships":[{"id":"p","name":"old"}]}`
	if err := st.Put(ctx, slots.KeyContent, []byte(payload)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := content.New(st, zap.NewNop())
	if err := s.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, _ := s.GetNewsArticle("a"); got.Status != models.ArticleDraft {
		t.Errorf("article status: got %q, want %q", got.Status, models.ArticleDraft)
	}
	if got, _ := s.GetEvent("e"); got.Status != models.EventUpcoming {
		t.Errorf("event status: got %q, want %q", got.Status, models.EventUpcoming)
	}
	if got, _ := s.GetPartnership("p"); got.Category != models.PartnerCommunity || got.Status != models.PartnershipActive {
		t.Errorf("partnership: got category %q status %q", got.Category, got.Status)
	}
}

func TestImport_EmptyCollectionsSurviveReload(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	s := newStore(t, ctx, st)
	if err := s.Dispose(ctx); err != nil {
		t.Fatalf("Dispose: %v", err)
	}

	raw, _, err := st.Get(ctx, slots.KeyContent)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := string(fields["events"]); got != "[]" {
		t.Errorf("stored events: got %s, want []", got)
	}

	reloaded := content.New(st, zap.NewNop())
	reloaded.Init(ctx)
	if got, want := reloaded.Snapshot(), s.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded snapshot differs:\n got %+v\nwant %+v", got, want)
	}
	if n := len(reloaded.Events()); n != 0 {
		t.Errorf("Events after reload: got %d, want 0", n)
	}
}

func TestLoad_RejectsDuplicateIDs(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	payload := `{"teamMembers":[{"id":"x","name":"One"},{"id":"x","name":"Two"}]}`
	if err := st.Put(ctx, slots.KeyContent, []byte(payload)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := content.New(st, zap.NewNop())
	if err := s.Load(ctx); err == nil {
		t.Fatal("Load: want duplicate id error")
	}
	if got := s.Snapshot(); !reflect.DeepEqual(got, content.Defaults()) {
		t.Error("state changed after rejected load")
	}
}

func TestDispose_KeepsUnreadableSnapshot(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()
	st := testutil.SetupTestSlots(t)
	bad := []byte(`{"newsArticles":[{"id":"1","status":"bogus"}]}`)
	if err := st.Put(ctx, slots.KeyContent, bad); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// a run that only reads leaves the stored value alone
	s := content.New(st, zap.NewNop())
	s.Init(ctx)
	s.TeamMembers()
	if err := s.Dispose(ctx); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	raw, _, err := st.Get(ctx, slots.KeyContent)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(raw) != string(bad) {
		t.Errorf("stored value overwritten: %s", raw)
	}

	// a mutation replaces it
	s = content.New(st, zap.NewNop())
	s.Init(ctx)
	m := s.AddTeamMember(ctx, testutil.TeamMember("Alice"))
	if err := s.Dispose(ctx); err != nil {
		t.Fatalf("Dispose: %v", err)
	}
	reloaded := content.New(st, zap.NewNop())
	if err := reloaded.Load(ctx); err != nil {
		t.Fatalf("Load after mutation: %v", err)
	}
	if _, ok := reloaded.GetTeamMember(m.ID); !ok {
		t.Error("mutation after failed load was not persisted")
	}
}
