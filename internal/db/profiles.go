package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skillsync/internal/matching"
)

// Profile is a user's learning goal and reported skills.
type Profile struct {
	UserID     uuid.UUID
	Goal       string
	Skills     *matching.SkillMap
	ResumeText string
	UpdatedAt  time.Time
}

// GetProfile returns the profile for a user. A user without a saved profile
// gets an empty one rather than ErrNotFound; the account existing is what
// matters.
func (db *DB) GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	var (
		p         Profile
		rawSkills []byte
	)
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, goal, skills, resume_text, updated_at FROM profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.Goal, &rawSkills, &p.ResumeText, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Profile{UserID: userID, Skills: matching.NewSkillMap()}, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	p.Skills = matching.NewSkillMap()
	if len(rawSkills) > 0 {
		if err := json.Unmarshal(rawSkills, p.Skills); err != nil {
			return nil, fmt.Errorf("failed to decode stored skills: %w", err)
		}
	}
	return &p, nil
}

// UpsertProfile stores the goal, skills and resume text for a user,
// replacing any previous profile.
func (db *DB) UpsertProfile(ctx context.Context, p *Profile) error {
	skills := p.Skills
	if skills == nil {
		skills = matching.NewSkillMap()
	}
	rawSkills, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("failed to encode skills: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO profiles (user_id, goal, skills, resume_text, updated_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id)
		 DO UPDATE SET goal = $2, skills = $3, resume_text = $4, updated_at = NOW()`,
		p.UserID, p.Goal, rawSkills, p.ResumeText,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
