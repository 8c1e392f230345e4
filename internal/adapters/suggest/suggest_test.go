package suggest

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func fakeGemini(reply string, err error, seen *string) *Gemini {
	g, _ := NewGemini(context.Background(), "test-key", WithCount(4), withGenerate(
		func(_ context.Context, prompt string) (string, error) {
			if seen != nil {
				*seen = prompt
			}
			return reply, err
		}))
	return g
}

func TestPrompt(t *testing.T) {
	Convey("Given a dimension with existing elements", t, func() {
		p := Prompt("Online Services", []string{"Availability", "Usability"}, 3)

		Convey("Then the prompt should name the dimension, elements and count", func() {
			So(p, ShouldContainSubstring, `"Online Services"`)
			So(p, ShouldContainSubstring, "[Availability, Usability]")
			So(p, ShouldContainSubstring, "suggest 3 new")
			So(p, ShouldContainSubstring, "JSON array")
		})
	})

	Convey("Given a non-positive count", t, func() {
		Convey("Then the default count should be used", func() {
			So(Prompt("x", nil, 0), ShouldContainSubstring, "suggest 3 new")
		})
	})
}

func TestGemini_Suggest(t *testing.T) {
	Convey("Given a model that replies with a JSON array", t, func() {
		var prompt string
		g := fakeGemini(` [{"name":"Open Data Portal","description":"Share datasets."},
			{"name":"API Catalogue","description":"List public APIs."}] `, nil, &prompt)

		Convey("When asking for suggestions", func() {
			out, err := g.Suggest(context.Background(), "Infrastructure", []string{"Network"})

			Convey("Then they should be decoded", func() {
				So(err, ShouldBeNil)
				So(out, ShouldHaveLength, 2)
				So(out[0].Name, ShouldEqual, "Open Data Portal")
				So(out[1].Description, ShouldEqual, "List public APIs.")
			})

			Convey("And the configured count should reach the prompt", func() {
				So(prompt, ShouldContainSubstring, "suggest 4 new")
				So(prompt, ShouldContainSubstring, "[Network]")
			})
		})
	})

	Convey("Given a transport failure", t, func() {
		g := fakeGemini("", errors.New("dial tcp: timeout"), nil)

		Convey("Then the error should be ErrSuggestionFailed wrapping the cause", func() {
			_, err := g.Suggest(context.Background(), "x", nil)
			So(errors.Is(err, ErrSuggestionFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "dial tcp")
		})
	})

	Convey("Given a reply that is not JSON", t, func() {
		g := fakeGemini("Sure! Here are some ideas", nil, nil)

		Convey("Then the error should be ErrSuggestionFailed", func() {
			_, err := g.Suggest(context.Background(), "x", nil)
			So(errors.Is(err, ErrSuggestionFailed), ShouldBeTrue)
		})
	})

	Convey("Given a reply with a nameless suggestion", t, func() {
		g := fakeGemini(`[{"name":"  ","description":"d"}]`, nil, nil)

		Convey("Then it should be rejected", func() {
			_, err := g.Suggest(context.Background(), "x", nil)
			So(errors.Is(err, ErrSuggestionFailed), ShouldBeTrue)
		})
	})

	Convey("Given a slow model and a short timeout", t, func() {
		g, err := NewGemini(context.Background(), "k", WithTimeout(10*time.Millisecond), withGenerate(
			func(ctx context.Context, _ string) (string, error) {
				<-ctx.Done()
				return "", ctx.Err()
			}))
		So(err, ShouldBeNil)

		Convey("Then the request should be cut off", func() {
			_, err := g.Suggest(context.Background(), "x", nil)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})
}

func TestNew(t *testing.T) {
	Convey("Given no API key", t, func() {
		s, err := New(context.Background(), "")

		Convey("Then the placeholder suggester should be returned", func() {
			So(err, ShouldBeNil)
			So(s.Provider(), ShouldEqual, "placeholder")

			out, err := s.Suggest(context.Background(), "any", nil)
			So(err, ShouldBeNil)
			So(out, ShouldHaveLength, 2)
			So(out[0].Name, ShouldEqual, "AI Suggestion 1")
			So(strings.Contains(out[1].Description, "API key"), ShouldBeTrue)
		})
	})

	Convey("Given NewGemini without a key", t, func() {
		_, err := NewGemini(context.Background(), "")

		Convey("Then it should fail", func() {
			So(errors.Is(err, ErrMissingAPIKey), ShouldBeTrue)
		})
	})

	Convey("Given model options", t, func() {
		g := fakeGemini("[]", nil, nil)

		Convey("Then defaults should apply unless overridden", func() {
			So(g.Model(), ShouldEqual, "gemini-2.5-flash")
			So(g.Provider(), ShouldEqual, "gemini")
			So(responseSchema().Items.Required, ShouldResemble, []string{"name", "description"})
		})
	})
}
