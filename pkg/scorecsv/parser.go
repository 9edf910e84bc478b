package scorecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	fieldVersion      = "version"
	fieldTitle        = "title"
	fieldGenre        = "genre"
	fieldArtist       = "artist"
	fieldPlayCount    = "play_count"
	fieldLastPlayDate = "last_play_date"

	chartDifficulty = "difficulty"
	chartScore      = "score"
	chartPGreat     = "pgreat"
	chartGreat      = "great"
	chartMissCount  = "miss_count"
	chartClearType  = "clear_type"
	chartDJLevel    = "dj_level"
)

var songHeaders = map[string][]string{
	fieldVersion:      {"バージョン", "version"},
	fieldTitle:        {"タイトル", "title"},
	fieldGenre:        {"ジャンル", "genre"},
	fieldArtist:       {"アーティスト", "artist"},
	fieldPlayCount:    {"プレー回数", "play count", "playcount"},
	fieldLastPlayDate: {"最終プレー日時", "last play date", "lastplaydate"},
}

var chartHeaders = map[string][]string{
	chartDifficulty: {"難易度", "difficulty"},
	chartScore:      {"スコア", "score"},
	chartPGreat:     {"pgreat"},
	chartGreat:      {"great"},
	chartMissCount:  {"ミスカウント", "miss count", "misscount"},
	chartClearType:  {"クリアタイプ", "clear type", "cleartype"},
	chartDJLevel:    {"dj level", "djlevel"},
}

// headerAliases maps a normalized header cell onto its canonical field key.
var headerAliases = buildHeaderAliases()

func buildHeaderAliases() map[string]string {
	aliases := make(map[string]string)
	for key, names := range songHeaders {
		for _, name := range names {
			aliases[normalizeHeader(name)] = key
		}
	}
	for _, tier := range Tiers {
		for field, names := range chartHeaders {
			key := chartKey(tier, field)
			for _, name := range names {
				aliases[normalizeHeader(string(tier)+" "+name)] = key
			}
		}
	}
	return aliases
}

func chartKey(tier Tier, field string) string {
	return strings.ToLower(string(tier)) + "." + field
}

// Load reads and parses an export file. Only I/O failures are returned.
func Load(path string) ([]ScoreEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scores: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse converts export CSV text into score entries in row order. It never
// fails: unparsable values fall back to their defaults.
func Parse(raw string) []ScoreEntry {
	entries, _ := ParseReport(raw)
	return entries
}

// ParseReport is Parse plus the list of values that had to be defaulted.
func ParseReport(raw string) ([]ScoreEntry, Issues) {
	raw = strings.TrimPrefix(raw, "\ufeff")
	if strings.TrimSpace(raw) == "" {
		return []ScoreEntry{}, nil
	}

	reader := csv.NewReader(strings.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		entries   = []ScoreEntry{}
		issues    Issues
		headerMap map[string]int
	)

	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				issues = append(issues, Issue{Line: perr.Line, Kind: IssueSyntax, Value: perr.Err.Error()})
				continue
			}
			issues = append(issues, Issue{Kind: IssueSyntax, Value: err.Error()})
			break
		}

		if headerMap == nil {
			headerMap = buildHeaderMap(record)
			issues = append(issues, missingHeaders(headerMap)...)
			continue
		}

		if isEmptyRecord(record) {
			continue
		}

		line, _ := reader.FieldPos(0)
		entry, rowIssues := parseRecord(record, headerMap, line)
		issues = append(issues, rowIssues...)
		entries = append(entries, entry)
	}

	return entries, issues
}

func buildHeaderMap(header []string) map[string]int {
	headerMap := make(map[string]int, len(header))
	for idx, cell := range header {
		key, ok := headerAliases[normalizeHeader(cell)]
		if !ok {
			continue
		}
		if _, exists := headerMap[key]; exists {
			continue
		}
		headerMap[key] = idx
	}
	return headerMap
}

func missingHeaders(headerMap map[string]int) Issues {
	var issues Issues
	check := func(key string) {
		if _, ok := headerMap[key]; !ok {
			issues = append(issues, Issue{Column: key, Kind: IssueMissingHeader})
		}
	}
	for _, key := range []string{fieldVersion, fieldTitle, fieldGenre, fieldArtist, fieldPlayCount} {
		check(key)
	}
	for _, tier := range Tiers {
		for _, field := range []string{chartDifficulty, chartScore, chartPGreat, chartGreat, chartMissCount, chartClearType, chartDJLevel} {
			check(chartKey(tier, field))
		}
	}
	check(fieldLastPlayDate)
	return issues
}

func normalizeHeader(value string) string {
	value = strings.TrimPrefix(strings.TrimSpace(value), "\ufeff")
	return strings.ToLower(collapseSpace(value))
}

func isEmptyRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

type rowParser struct {
	record []string
	header map[string]int
	line   int
	issues Issues
	short  bool
}

func (p *rowParser) get(key string) string {
	pos, ok := p.header[key]
	if !ok {
		return ""
	}
	if pos >= len(p.record) {
		if !p.short {
			p.short = true
			p.issues = append(p.issues, Issue{Line: p.line, Kind: IssueShortRecord, Value: strconv.Itoa(len(p.record))})
		}
		return ""
	}
	return p.record[pos]
}

func (p *rowParser) value(key string) string {
	return strings.TrimSpace(p.get(key))
}

// count parses a non-negative integer, defaulting to zero.
func (p *rowParser) count(key string) int {
	raw := p.value(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		p.issues = append(p.issues, Issue{Line: p.line, Column: key, Kind: IssueNumber, Value: raw})
		return 0
	}
	return value
}

func (p *rowParser) missCount(key string) *int {
	raw := p.value(key)
	if raw == MissCountUnavailable {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		if raw != "" {
			p.issues = append(p.issues, Issue{Line: p.line, Column: key, Kind: IssueNumber, Value: raw})
		}
		return nil
	}
	return &value
}

func (p *rowParser) chart(tier Tier) *ChartScore {
	diffKey := chartKey(tier, chartDifficulty)
	raw := p.value(diffKey)
	difficulty, err := strconv.Atoi(raw)
	if err != nil {
		if raw != "" {
			p.issues = append(p.issues, Issue{Line: p.line, Column: diffKey, Kind: IssueDifficulty, Value: raw})
		}
		return nil
	}
	if difficulty <= 0 {
		return nil
	}

	clearKey := chartKey(tier, chartClearType)
	clearRaw := p.value(clearKey)
	clearType := ParseClearType(clearRaw)
	if clearType == ClearNoPlay && clearRaw != "" && collapseSpace(strings.ToUpper(clearRaw)) != string(ClearNoPlay) {
		p.issues = append(p.issues, Issue{Line: p.line, Column: clearKey, Kind: IssueClearType, Value: clearRaw})
	}

	djKey := chartKey(tier, chartDJLevel)
	djRaw := p.value(djKey)
	djLevel := ParseDJLevel(djRaw)
	if djLevel == DJLevelNone && djRaw != "" && djRaw != string(DJLevelNone) {
		p.issues = append(p.issues, Issue{Line: p.line, Column: djKey, Kind: IssueDJLevel, Value: djRaw})
	}

	return &ChartScore{
		Difficulty: difficulty,
		Score:      p.count(chartKey(tier, chartScore)),
		PGreat:     p.count(chartKey(tier, chartPGreat)),
		Great:      p.count(chartKey(tier, chartGreat)),
		MissCount:  p.missCount(chartKey(tier, chartMissCount)),
		ClearType:  clearType,
		DJLevel:    djLevel,
	}
}

func parseRecord(record []string, header map[string]int, line int) (ScoreEntry, Issues) {
	p := &rowParser{record: record, header: header, line: line}

	entry := ScoreEntry{
		Version:   p.get(fieldVersion),
		Title:     p.get(fieldTitle),
		Genre:     p.get(fieldGenre),
		Artist:    p.get(fieldArtist),
		PlayCount: p.count(fieldPlayCount),
	}
	for _, tier := range Tiers {
		entry.setChart(tier, p.chart(tier))
	}
	entry.LastPlayDate = p.value(fieldLastPlayDate)

	return entry, p.issues
}
