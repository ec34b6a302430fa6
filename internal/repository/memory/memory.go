// Package memory is an in-process store that honours the same contracts as the
// PostgreSQL repositories: unique emails and choice texts, RESTRICT on answer
// choices, cascades from questions. It backs the test suites and dry runs.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/examdesk/examdesk-backend/internal/model"
	"github.com/examdesk/examdesk-backend/internal/repository"
)

type questionRow struct {
	id       int64
	text     string
	answerID int64
}

type state struct {
	seq       int64
	users     map[int64]model.User
	choices   map[int64]model.Choice
	questions map[int64]questionRow
	members   map[int64]map[int64]struct{} // question -> choice set
	answers   map[int64]model.ExamineeAnswer
}

func (s *state) clone() *state {
	c := &state{
		seq:       s.seq,
		users:     maps.Clone(s.users),
		choices:   maps.Clone(s.choices),
		questions: maps.Clone(s.questions),
		members:   make(map[int64]map[int64]struct{}, len(s.members)),
		answers:   maps.Clone(s.answers),
	}
	for qid, set := range s.members {
		c.members[qid] = maps.Clone(set)
	}
	return c
}

// Store holds every table in memory.
type Store struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   *state
}

// New returns an empty Store.
func New() *Store {
	return &Store{st: &state{
		users:     map[int64]model.User{},
		choices:   map[int64]model.Choice{},
		questions: map[int64]questionRow{},
		members:   map[int64]map[int64]struct{}{},
		answers:   map[int64]model.ExamineeAnswer{},
	}}
}

type txKey struct{}

// WithinTx serialises units of work and restores the previous state when fn fails.
// Rollback replaces the whole state, so writes made outside a transaction while fn
// runs are lost too. The store is meant for serial use in tests and dry runs.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snapshot := s.st.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) nextID() int64 {
	s.st.seq++
	return s.st.seq
}

// Users returns the user table view.
func (s *Store) Users() *Users { return &Users{s: s} }

// Choices returns the choice table view.
func (s *Store) Choices() *Choices { return &Choices{s: s} }

// Questions returns the question table view.
func (s *Store) Questions() *Questions { return &Questions{s: s} }

// Answers returns the examinee answer table view.
func (s *Store) Answers() *Answers { return &Answers{s: s} }

// ChoiceCount reports how many choice rows exist.
func (s *Store) ChoiceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.choices)
}

// Users implements the user store contract.
type Users struct{ s *Store }

func (u *Users) GetByID(_ context.Context, id int64) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	row, ok := u.s.st.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (u *Users) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, row := range u.s.st.users {
		if row.Email == email {
			return &row, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u *Users) List(_ context.Context) ([]model.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	users := make([]model.User, 0, len(u.s.st.users))
	for _, row := range u.s.st.users {
		users = append(users, row)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (u *Users) Create(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, row := range u.s.st.users {
		if row.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	now := time.Now().UTC()
	user.ID = u.s.nextID()
	user.CreatedAt, user.UpdatedAt = now, now
	u.s.st.users[user.ID] = *user
	return nil
}

func (u *Users) Update(_ context.Context, user *model.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	row, ok := u.s.st.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Email = row.Email
	user.CreatedAt = row.CreatedAt
	user.LastLogin = row.LastLogin
	user.UpdatedAt = time.Now().UTC()
	u.s.st.users[user.ID] = *user
	return nil
}

func (u *Users) TouchLastLogin(_ context.Context, id int64, at time.Time) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	row, ok := u.s.st.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	row.LastLogin = &at
	u.s.st.users[id] = row
	return nil
}

// Choices implements the choice store contract.
type Choices struct{ s *Store }

func (c *Choices) GetOrCreate(_ context.Context, text string) (*model.Choice, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if existing, ok := c.findByText(text); ok {
		return &existing, nil
	}
	row := model.Choice{ID: c.s.nextID(), Text: text}
	c.s.st.choices[row.ID] = row
	return &row, nil
}

func (c *Choices) findByText(text string) (model.Choice, bool) {
	for _, row := range c.s.st.choices {
		if row.Text == text {
			return row, true
		}
	}
	return model.Choice{}, false
}

func (c *Choices) GetByID(_ context.Context, id int64) (*model.Choice, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	row, ok := c.s.st.choices[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (c *Choices) List(_ context.Context) ([]model.Choice, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	choices := make([]model.Choice, 0, len(c.s.st.choices))
	for _, row := range c.s.st.choices {
		choices = append(choices, row)
	}
	sort.Slice(choices, func(i, j int) bool { return choices[i].ID > choices[j].ID })
	return choices, nil
}

func (c *Choices) Create(_ context.Context, choice *model.Choice) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.findByText(choice.Text); ok {
		return repository.ErrDuplicateChoice
	}
	choice.ID = c.s.nextID()
	c.s.st.choices[choice.ID] = *choice
	return nil
}

func (c *Choices) Update(_ context.Context, choice *model.Choice) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.st.choices[choice.ID]; !ok {
		return repository.ErrNotFound
	}
	if existing, ok := c.findByText(choice.Text); ok && existing.ID != choice.ID {
		return repository.ErrDuplicateChoice
	}
	c.s.st.choices[choice.ID] = *choice
	return nil
}

func (c *Choices) Delete(_ context.Context, id int64) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	if _, ok := c.s.st.choices[id]; !ok {
		return repository.ErrNotFound
	}
	for _, q := range c.s.st.questions {
		if q.answerID == id {
			return repository.ErrChoiceInUse
		}
	}
	delete(c.s.st.choices, id)
	for _, set := range c.s.st.members {
		delete(set, id)
	}
	return nil
}

// Questions implements the question store contract.
type Questions struct{ s *Store }

func (q *Questions) Create(_ context.Context, question *model.Question) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, ok := q.s.st.choices[question.Answer.ID]; !ok {
		return repository.ErrNotFound
	}
	question.ID = q.s.nextID()
	q.s.st.questions[question.ID] = questionRow{id: question.ID, text: question.Text, answerID: question.Answer.ID}
	return nil
}

func (q *Questions) load(row questionRow) model.Question {
	out := model.Question{
		ID:      row.id,
		Text:    row.text,
		Answer:  q.s.st.choices[row.answerID],
		Choices: []model.Choice{},
	}
	for cid := range q.s.st.members[row.id] {
		out.Choices = append(out.Choices, q.s.st.choices[cid])
	}
	sort.Slice(out.Choices, func(i, j int) bool { return out.Choices[i].ID < out.Choices[j].ID })
	return out
}

func (q *Questions) GetByID(_ context.Context, id int64) (*model.Question, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	row, ok := q.s.st.questions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := q.load(row)
	return &out, nil
}

func (q *Questions) List(_ context.Context) ([]model.Question, error) {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	questions := make([]model.Question, 0, len(q.s.st.questions))
	for _, row := range q.s.st.questions {
		questions = append(questions, q.load(row))
	}
	sort.Slice(questions, func(i, j int) bool { return questions[i].ID > questions[j].ID })
	return questions, nil
}

func (q *Questions) Update(_ context.Context, question *model.Question) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, ok := q.s.st.questions[question.ID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := q.s.st.choices[question.Answer.ID]; !ok {
		return repository.ErrNotFound
	}
	q.s.st.questions[question.ID] = questionRow{id: question.ID, text: question.Text, answerID: question.Answer.ID}
	return nil
}

func (q *Questions) SetChoices(_ context.Context, questionID int64, choiceIDs []int64) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, ok := q.s.st.questions[questionID]; !ok {
		return repository.ErrNotFound
	}
	set := make(map[int64]struct{}, len(choiceIDs))
	for _, id := range choiceIDs {
		if _, ok := q.s.st.choices[id]; !ok {
			return repository.ErrNotFound
		}
		set[id] = struct{}{}
	}
	q.s.st.members[questionID] = set
	return nil
}

func (q *Questions) Delete(_ context.Context, id int64) error {
	q.s.mu.Lock()
	defer q.s.mu.Unlock()
	if _, ok := q.s.st.questions[id]; !ok {
		return repository.ErrNotFound
	}
	delete(q.s.st.questions, id)
	delete(q.s.st.members, id)
	delete(q.s.st.answers, id)
	return nil
}

// Answers implements the examinee answer store contract.
type Answers struct{ s *Store }

func (a *Answers) GetByQuestion(_ context.Context, questionID int64) (*model.ExamineeAnswer, error) {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	row, ok := a.s.st.answers[questionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &row, nil
}

func (a *Answers) Upsert(_ context.Context, answer *model.ExamineeAnswer) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.st.questions[answer.QuestionID]; !ok {
		return repository.ErrNotFound
	}
	now := time.Now().UTC()
	if existing, ok := a.s.st.answers[answer.QuestionID]; ok {
		answer.ID = existing.ID
		answer.CreatedAt = existing.CreatedAt
	} else {
		answer.ID = a.s.nextID()
		answer.CreatedAt = now
	}
	answer.UpdatedAt = now
	a.s.st.answers[answer.QuestionID] = *answer
	return nil
}
