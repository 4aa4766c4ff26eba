package apifootball

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-sync/internal/usecase"
)

// envelope is the wrapper every api-football endpoint responds with.
type envelope[T any] struct {
	Get      string         `json:"get"`
	Errors   providerErrors `json:"errors"`
	Results  int            `json:"results"`
	Response []T            `json:"response" validate:"dive"`
}

func (e envelope[T]) providerErrors() providerErrors { return e.Errors }

// providerErrors holds the "errors" member, which the provider sends as an
// empty array when there are none and as an object keyed by cause otherwise.
type providerErrors map[string]string

func (p *providerErrors) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = nil
		return nil
	}

	if trimmed[0] == '[' {
		var list []any
		if err := sonic.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		if len(list) == 0 {
			*p = nil
			return nil
		}
		out := make(providerErrors, len(list))
		for i, item := range list {
			out[fmt.Sprintf("error_%d", i)] = fmt.Sprint(item)
		}
		*p = out
		return nil
	}

	var obj map[string]any
	if err := sonic.Unmarshal(trimmed, &obj); err != nil {
		return err
	}
	out := make(providerErrors, len(obj))
	for k, v := range obj {
		out[k] = fmt.Sprint(v)
	}
	*p = out
	return nil
}

// err maps a non-empty errors member. Rate limiting is transient; anything
// else (bad key, bad parameters) is a rejected request.
func (p providerErrors) err() error {
	if len(p) == 0 {
		return nil
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	transient := false
	for _, k := range keys {
		parts = append(parts, k+"="+p[k])
		lower := strings.ToLower(k)
		if lower == "ratelimit" || lower == "requests" {
			transient = true
		}
	}
	msg := strings.Join(parts, "; ")
	if transient {
		return fmt.Errorf("%w: provider rate limited: %s", usecase.ErrDependencyUnavailable, msg)
	}
	return fmt.Errorf("provider rejected request: %s", msg)
}

type leagueItem struct {
	League struct {
		ID   int64  `json:"id" validate:"required,gt=0"`
		Name string `json:"name"`
		Type string `json:"type"`
		Logo string `json:"logo"`
	} `json:"league"`
	Seasons []struct {
		Year    int  `json:"year"`
		Current bool `json:"current"`
	} `json:"seasons"`
}

type teamRef struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type teamItem struct {
	Team teamRef `json:"team"`
}

type squadItem struct {
	Team    teamRef `json:"team"`
	Players []struct {
		ID       int64  `json:"id" validate:"required,gt=0"`
		Name     string `json:"name"`
		Number   *int   `json:"number"`
		Position string `json:"position"`
		Photo    string `json:"photo"`
	} `json:"players" validate:"dive"`
}

type playerItem struct {
	Player struct {
		ID    int64  `json:"id" validate:"required,gt=0"`
		Name  string `json:"name"`
		Photo string `json:"photo"`
	} `json:"player"`
	Statistics []struct {
		League struct {
			ID     int64 `json:"id"`
			Season int   `json:"season"`
		} `json:"league"`
		Games struct {
			Number   *int   `json:"number"`
			Position string `json:"position"`
		} `json:"games"`
	} `json:"statistics"`
}

type statusDTO struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

type fixtureItem struct {
	Fixture struct {
		ID        int64     `json:"id" validate:"required,gt=0"`
		Referee   *string   `json:"referee"`
		Timezone  string    `json:"timezone"`
		Date      string    `json:"date"`
		Timestamp int64     `json:"timestamp"`
		Status    statusDTO `json:"status"`
	} `json:"fixture"`
	League struct {
		ID     int64  `json:"id" validate:"required,gt=0"`
		Season int    `json:"season"`
		Round  string `json:"round"`
	} `json:"league"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

// liveFixtureItem keeps lineups and events as pointers so an omitted array is
// distinguishable from an empty one.
type liveFixtureItem struct {
	fixtureItem
	Lineups *[]lineupDTO `json:"lineups"`
	Events  *[]eventDTO  `json:"events"`
}

type personDTO struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

type lineupPlayerDTO struct {
	Player struct {
		ID     *int64  `json:"id"`
		Name   *string `json:"name"`
		Number *int    `json:"number"`
		Pos    *string `json:"pos"`
		Grid   *string `json:"grid"`
	} `json:"player"`
}

type lineupDTO struct {
	Team *struct {
		ID int64 `json:"id"`
	} `json:"team"`
	Formation   *string           `json:"formation"`
	StartXI     []lineupPlayerDTO `json:"startXI"`
	Substitutes []lineupPlayerDTO `json:"substitutes"`
}

type eventDTO struct {
	Time struct {
		Elapsed *int `json:"elapsed"`
		Extra   *int `json:"extra"`
	} `json:"time"`
	Team *struct {
		ID *int64 `json:"id"`
	} `json:"team"`
	Player   *personDTO `json:"player"`
	Assist   *personDTO `json:"assist"`
	Type     *string    `json:"type"`
	Detail   *string    `json:"detail"`
	Comments *string    `json:"comments"`
}
