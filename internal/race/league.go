package race

// Entry names one race of a league: the course to load and its lap count.
type Entry struct {
	Course string
	Laps   int
}

// League is an ordered list of races driven one after another.
type League struct {
	Name    string
	entries []Entry
	current int
}

func NewLeague(name string, entries ...Entry) *League {
	return &League{Name: name, entries: entries}
}

func (l *League) Len() int { return len(l.entries) }

// Current returns the entry being driven; ok is false once the league is
// completed.
func (l *League) Current() (Entry, bool) {
	if l.IsCompleted() {
		return Entry{}, false
	}
	return l.entries[l.current], true
}

// Next moves on to the following race and returns it.
func (l *League) Next() (Entry, bool) {
	if !l.IsCompleted() {
		l.current++
	}
	return l.Current()
}

func (l *League) Index() int { return l.current }

func (l *League) IsCompleted() bool {
	return l.current >= len(l.entries)
}

func (l *League) Reset() { l.current = 0 }
