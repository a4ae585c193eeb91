package feedsim

import "github.com/medalwatch/podium/internal/domain/medal"

// Wire shapes of the competition results document the watcher polls.
type resultsDocument struct {
	PageProps pageProps `json:"pageProps"`
}

type pageProps struct {
	GameDiscipline gameDiscipline `json:"gameDiscipline"`
}

type gameDiscipline struct {
	Events []eventDocument `json:"events"`
}

type eventDocument struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Awards []awardDocument `json:"awards"`
}

type awardDocument struct {
	MedalType   string              `json:"medalType"`
	Participant participantDocument `json:"participant"`
}

type participantDocument struct {
	Title         string         `json:"title"`
	CountryObject *countryObject `json:"countryObject,omitempty"`
}

type countryObject struct {
	Name string `json:"name"`
}

// renderDocument projects simulated events into the wire document.
func renderDocument(events []Event) resultsDocument {
	out := make([]eventDocument, 0, len(events))
	for _, ev := range events {
		out = append(out, renderEvent(ev))
	}

	return resultsDocument{
		PageProps: pageProps{GameDiscipline: gameDiscipline{Events: out}},
	}
}

func renderEvent(ev Event) eventDocument {
	awards := make([]awardDocument, 0, len(ev.Awards))
	for _, a := range ev.Awards {
		awards = append(awards, renderAward(a, ev.TitleOnly))
	}

	return eventDocument{ID: ev.ID, Title: ev.Title, Awards: awards}
}

// renderAward writes the entrant name where the watcher looks for it:
// the country object normally, the participant title alone for events
// without one.
func renderAward(a medal.Award, titleOnly bool) awardDocument {
	p := participantDocument{Title: a.Entrant}
	if !titleOnly {
		p.CountryObject = &countryObject{Name: a.Entrant}
	}

	return awardDocument{MedalType: a.Class.Token(), Participant: p}
}
