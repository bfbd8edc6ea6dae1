package profile

import "github.com/saulo-duarte/odontomind-api/internal/quiz"

type TopicStat struct {
	Topic      string `json:"topic"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

type Stats struct {
	Topics   []TopicStat `json:"topics"`
	Overall  int         `json:"overall"`
	Attempts int         `json:"attempts"`
}

// Aggregate groups attempts by topic in first-seen order. Topics with no
// recorded questions are left out, and an empty log has overall 0.
func Aggregate(attempts []*quiz.Attempt) Stats {
	type acc struct{ score, total int }

	var (
		order   []string
		byTopic = map[string]*acc{}
		score   int
		total   int
	)
	for _, a := range attempts {
		t, ok := byTopic[a.Topic]
		if !ok {
			t = &acc{}
			byTopic[a.Topic] = t
			order = append(order, a.Topic)
		}
		t.score += a.Score
		t.total += a.TotalQuestions
		score += a.Score
		total += a.TotalQuestions
	}

	stats := Stats{Topics: []TopicStat{}, Overall: quiz.Percentage(score, total), Attempts: len(attempts)}
	for _, topic := range order {
		t := byTopic[topic]
		if t.total == 0 {
			continue
		}
		stats.Topics = append(stats.Topics, TopicStat{
			Topic:      topic,
			Score:      t.score,
			Total:      t.total,
			Percentage: quiz.Percentage(t.score, t.total),
		})
	}
	return stats
}
