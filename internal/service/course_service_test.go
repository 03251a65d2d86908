package service

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"strings"
	"testing"

	"coursehub/internal/model"
	"coursehub/internal/pubsub"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseFixture struct {
	courses     *fakeCourseRepo
	categories  *fakeCategoryRepo
	sessions    *fakeSessionRepo
	comments    *fakeCommentRepo
	enrollments *fakeEnrollmentRepo
	store       *fakeObjectStore
	queue       *fakeQueue
	publisher   *fakePublisher
	svc         CourseService
	category    model.Category
}

func newCourseFixture() *courseFixture {
	f := &courseFixture{
		courses:     &fakeCourseRepo{},
		sessions:    &fakeSessionRepo{},
		comments:    &fakeCommentRepo{},
		enrollments: &fakeEnrollmentRepo{},
		store:       newFakeObjectStore(),
		queue:       &fakeQueue{},
		publisher:   &fakePublisher{},
		category:    model.Category{CategoryID: uuid.NewString(), Title: "Frontend", Href: "frontend"},
	}
	f.categories = &fakeCategoryRepo{categories: []model.Category{f.category}}
	f.svc = NewCourseService(CourseDeps{
		Courses:      f.courses,
		Categories:   f.categories,
		Sessions:     f.sessions,
		Comments:     f.comments,
		Enrollments:  f.enrollments,
		Covers:       f.store,
		Queue:        f.queue,
		Publisher:    f.publisher,
		CleanupQueue: "cover_cleanup",
		CourseTopic:  "course-events",
	}, zerolog.Nop())
	return f
}

func pngCover(t *testing.T) *bytes.Reader {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 40, 20))))
	return bytes.NewReader(buf.Bytes())
}

func (f *courseFixture) newCourse(name string) *model.Course {
	return &model.Course{
		Name:       name,
		CreatorID:  uuid.NewString(),
		CategoryID: f.category.CategoryID,
		Price:      decimal.RequireFromString("49.90"),
	}
}

func TestCreateCourse(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()

	created, err := f.svc.CreateCourse(ctx, f.newCourse("Go Básico"), pngCover(t))
	require.NoError(t, err)

	assert.NotEmpty(t, created.CourseID)
	assert.Equal(t, "go-basico", created.Href)
	assert.Equal(t, model.CourseStatusStart, created.Status)
	assert.True(t, strings.HasPrefix(created.Cover, "covers/"))
	require.NotNil(t, created.Creator)
	assert.Contains(t, f.store.objects, created.Cover)
}

func TestCreateCourseKeepsSubmittedHref(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()

	for _, href := range []string{"python_course", "آموزش-جاوااسکریپت", "آموزش-گو"} {
		c := f.newCourse("Course")
		c.Href = "  " + href + " "
		created, err := f.svc.CreateCourse(ctx, c, pngCover(t))
		require.NoError(t, err)
		assert.Equal(t, href, created.Href)

		detail, err := f.svc.GetCourseDetail(ctx, href, "")
		require.NoError(t, err)
		assert.Equal(t, created.CourseID, detail.Course.CourseID)
	}
}

func TestCreateCourseNonLatinNamesGetDistinctHrefs(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()

	first, err := f.svc.CreateCourse(ctx, f.newCourse("آموزش جاوااسکریپت"), pngCover(t))
	require.NoError(t, err)
	second, err := f.svc.CreateCourse(ctx, f.newCourse("آموزش گو"), pngCover(t))
	require.NoError(t, err)
	require.NotEqual(t, first.Href, second.Href)

	for _, c := range []*model.Course{first, second} {
		detail, err := f.svc.GetCourseDetail(ctx, c.Href, "")
		require.NoError(t, err)
		assert.Equal(t, c.CourseID, detail.Course.CourseID, c.Href)
	}
}

func TestCreateCourseSuffixesTakenDerivedHref(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()

	first, err := f.svc.CreateCourse(ctx, f.newCourse("Go"), pngCover(t))
	require.NoError(t, err)
	second, err := f.svc.CreateCourse(ctx, f.newCourse("Go"), pngCover(t))
	require.NoError(t, err)

	assert.Equal(t, "go", first.Href)
	assert.True(t, strings.HasPrefix(second.Href, "go-"), second.Href)
	assert.NotEqual(t, first.Href, second.Href)
}

func TestCreateCourseRequiresCover(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.CreateCourse(context.Background(), f.newCourse("Go"), nil)
	assert.ErrorIs(t, err, ErrCoverRequired)
	assert.Empty(t, f.courses.courses)
}

func TestCreateCourseRejectsNonImageCover(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.CreateCourse(context.Background(), f.newCourse("Go"), strings.NewReader("plain text, not a picture"))
	assert.ErrorIs(t, err, ErrInvalidCover)
	assert.Empty(t, f.store.objects)
	assert.Empty(t, f.courses.courses)
}

func TestCreateCourseUnknownCategory(t *testing.T) {
	f := newCourseFixture()
	c := f.newCourse("Go")
	c.CategoryID = uuid.NewString()

	_, err := f.svc.CreateCourse(context.Background(), c, pngCover(t))
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCreateCourseRemovesCoverWhenInsertFails(t *testing.T) {
	f := newCourseFixture()
	f.courses.createErr = errBoom

	_, err := f.svc.CreateCourse(context.Background(), f.newCourse("Go"), pngCover(t))
	assert.ErrorIs(t, err, errBoom)
	assert.Empty(t, f.store.objects)
}

func TestGetCoursesByCategory(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	_, err := f.svc.CreateCourse(ctx, f.newCourse("Go"), pngCover(t))
	require.NoError(t, err)

	courses, err := f.svc.GetCoursesByCategory(ctx, "frontend")
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	courses, err = f.svc.GetCoursesByCategory(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestGetCourseDetail(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()

	course, err := f.svc.CreateCourse(ctx, f.newCourse("Go"), pngCover(t))
	require.NoError(t, err)
	other, err := f.svc.CreateCourse(ctx, f.newCourse("Rust"), pngCover(t))
	require.NoError(t, err)

	require.NoError(t, f.sessions.CreateSession(ctx, &model.Session{Title: "intro", CourseID: course.CourseID}))
	require.NoError(t, f.sessions.CreateSession(ctx, &model.Session{Title: "setup", CourseID: course.CourseID}))
	require.NoError(t, f.sessions.CreateSession(ctx, &model.Session{Title: "other", CourseID: other.CourseID}))

	f.comments.comments = []model.Comment{
		{CommentID: "1", CourseID: course.CourseID, IsAccept: true},
		{CommentID: "2", CourseID: course.CourseID, IsAccept: false},
		{CommentID: "3", CourseID: other.CourseID, IsAccept: true},
	}

	student := uuid.NewString()
	_, err = f.enrollments.CreateEnrollment(ctx, &model.Enrollment{UserID: student, CourseID: course.CourseID})
	require.NoError(t, err)
	_, err = f.enrollments.CreateEnrollment(ctx, &model.Enrollment{UserID: uuid.NewString(), CourseID: course.CourseID})
	require.NoError(t, err)

	detail, err := f.svc.GetCourseDetail(ctx, "go", student)
	require.NoError(t, err)
	assert.Equal(t, course.CourseID, detail.Course.CourseID)
	assert.Len(t, detail.Sessions, 2)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "1", detail.Comments[0].CommentID)
	assert.Equal(t, 2, detail.CourseStudentsCount)
	assert.True(t, detail.IsUserRegistered)

	detail, err = f.svc.GetCourseDetail(ctx, "go", uuid.NewString())
	require.NoError(t, err)
	assert.False(t, detail.IsUserRegistered)

	detail, err = f.svc.GetCourseDetail(ctx, "rust", student)
	require.NoError(t, err)
	assert.Len(t, detail.Sessions, 1)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "3", detail.Comments[0].CommentID)
	assert.Equal(t, 0, detail.CourseStudentsCount)
}

func TestGetCourseDetailUnknownHref(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.GetCourseDetail(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestDeleteCourseMalformedIDNeverDeletes(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.DeleteCourse(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidCourseID)
	assert.Zero(t, f.courses.deletes)
}

func TestDeleteCourseNotFound(t *testing.T) {
	f := newCourseFixture()

	_, err := f.svc.DeleteCourse(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.Empty(t, f.queue.sent)
	assert.Empty(t, f.publisher.messages)
}

func TestDeleteCourseSchedulesCleanupAndPublishes(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course, err := f.svc.CreateCourse(ctx, f.newCourse("Go"), pngCover(t))
	require.NoError(t, err)

	deleted, err := f.svc.DeleteCourse(ctx, course.CourseID)
	require.NoError(t, err)
	assert.Equal(t, course.CourseID, deleted.CourseID)
	assert.Empty(t, f.courses.courses)

	require.Len(t, f.queue.sent, 1)
	assert.Equal(t, "cover_cleanup", f.queue.sent[0].queue)
	var job model.CoverCleanupJob
	require.NoError(t, json.Unmarshal(f.queue.sent[0].payload, &job))
	assert.Equal(t, course.Cover, job.CoverKey)

	require.Len(t, f.publisher.messages, 1)
	assert.Equal(t, "course-events", f.publisher.messages[0].topic)
	var evt pubsub.Event
	require.NoError(t, json.Unmarshal(f.publisher.messages[0].payload, &evt))
	assert.Equal(t, pubsub.EventCourseDeleted, evt.Type)
	assert.Equal(t, course.CourseID, evt.CourseID)
}

func TestDeleteCourseSideEffectFailuresAreIgnored(t *testing.T) {
	f := newCourseFixture()
	ctx := context.Background()
	course, err := f.svc.CreateCourse(ctx, f.newCourse("Go"), pngCover(t))
	require.NoError(t, err)
	f.queue.err = errBoom
	f.publisher.err = errBoom

	deleted, err := f.svc.DeleteCourse(ctx, course.CourseID)
	require.NoError(t, err)
	assert.Equal(t, course.CourseID, deleted.CourseID)
}
