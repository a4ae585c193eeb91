package feed

import (
	"encoding/json"
	"fmt"

	medal "github.com/medalwatch/podium/internal/domain/medal"
)

// Wire shapes for the results document. Only the fields the extractor
// reads are declared; the real document carries far more.
type resultsDocument struct {
	PageProps struct {
		GameDiscipline struct {
			Events []struct {
				Awards []awardRecord `json:"awards"`
			} `json:"events"`
		} `json:"gameDiscipline"`
	} `json:"pageProps"`
}

type awardRecord struct {
	MedalType   string      `json:"medalType"`
	Participant participant `json:"participant"`
}

type participant struct {
	Title         string `json:"title"`
	CountryObject *struct {
		Name string `json:"name"`
	} `json:"countryObject"`
}

// extractAwards decodes the results document and flattens every event's
// award list into domain records. One malformed award rejects the whole
// fetch: a partial tally would rank entrants on uneven evidence.
func extractAwards(body []byte) ([]medal.Award, error) {
	var doc resultsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	events := doc.PageProps.GameDiscipline.Events
	if events == nil {
		return nil, fmt.Errorf("%w: missing pageProps.gameDiscipline.events", ErrMalformed)
	}

	awards := make([]medal.Award, 0, len(events))
	for _, ev := range events {
		for _, rec := range ev.Awards {
			award, err := rec.toAward()
			if err != nil {
				return nil, err
			}
			awards = append(awards, award)
		}
	}
	return awards, nil
}

// toAward maps one wire award to the domain record. The entrant is the
// country name when present, falling back to the participant title for
// individual athletes without a country object.
func (r awardRecord) toAward() (medal.Award, error) {
	class, err := medal.ParseClass(r.MedalType)
	if err != nil {
		return medal.Award{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	entrant := r.Participant.Title
	if r.Participant.CountryObject != nil {
		entrant = r.Participant.CountryObject.Name
	}

	award := medal.Award{Class: class, Entrant: entrant}
	if err := award.Validate(); err != nil {
		return medal.Award{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return award, nil
}
