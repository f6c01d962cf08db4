// Package database persists store snapshots to SQLite and restores them
// at startup. One checkpoint is one transaction: the previous image is
// replaced wholesale, so the on-disk state is always a consistent cut.
package database

import (
	"database/sql"
	"fmt"
	"time"

	"decentra-social-network/store"
)

// SaveSnapshot writes the full snapshot in a single transaction.
func SaveSnapshot(db *sql.DB, snap store.Snapshot) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start checkpoint transaction: %w", err)
	}
	defer tx.Rollback()

	// Children before parents so the clearing pass never trips a
	// foreign key.
	tables := []string{
		"post_likes", "comments", "follow_requests", "follows", "blocks",
		"posts", "profiles", "accounts", "id_counters",
	}
	for _, table := range tables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, acct := range snap.Accounts {
		_, err := tx.Exec(
			"INSERT INTO accounts (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)",
			acct.ID, acct.Email, acct.PasswordHash, acct.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save account %d: %w", acct.ID, err)
		}
	}

	for _, p := range snap.Profiles {
		_, err := tx.Exec(`
            INSERT INTO profiles (id, username, bio, avatar, created_at, updated_at,
                follower_count, following_count, post_count,
                profile_visibility, show_social_graph, verification_status)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Username, p.Bio, p.Avatar, p.CreatedAt, p.UpdatedAt,
			p.FollowerCount, p.FollowingCount, p.PostCount,
			string(p.PrivacySettings.ProfileVisibility),
			p.PrivacySettings.ShowSocialGraph,
			string(p.VerificationStatus),
		)
		if err != nil {
			return fmt.Errorf("failed to save profile %d: %w", p.ID, err)
		}
	}

	for _, p := range snap.Posts {
		_, err := tx.Exec(`
            INSERT INTO posts (id, author_id, content, created_at, updated_at,
                like_count, comment_count, visibility)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.AuthorID, p.Content, p.CreatedAt, p.UpdatedAt,
			p.LikeCount, p.CommentCount, string(p.Visibility),
		)
		if err != nil {
			return fmt.Errorf("failed to save post %d: %w", p.ID, err)
		}
	}

	for _, c := range snap.Comments {
		_, err := tx.Exec(`
            INSERT INTO comments (id, post_id, author_id, content, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.PostID, c.AuthorID, c.Content, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to save comment %d: %w", c.ID, err)
		}
	}

	for _, like := range snap.Likes {
		if _, err := tx.Exec("INSERT INTO post_likes (post_id, user_id) VALUES (?, ?)", like.PostID, like.UserID); err != nil {
			return fmt.Errorf("failed to save like: %w", err)
		}
	}
	for _, edge := range snap.Edges {
		if _, err := tx.Exec("INSERT INTO follows (follower_id, followed_id) VALUES (?, ?)", edge.Follower, edge.Followed); err != nil {
			return fmt.Errorf("failed to save follow edge: %w", err)
		}
	}
	for _, block := range snap.Blocks {
		if _, err := tx.Exec("INSERT INTO blocks (blocker_id, blocked_id) VALUES (?, ?)", block.Blocker, block.Blocked); err != nil {
			return fmt.Errorf("failed to save block: %w", err)
		}
	}

	for _, r := range snap.Requests {
		_, err := tx.Exec(`
            INSERT INTO follow_requests (id, requester_id, target_id, created_at, status, message)
            VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Requester, r.Target, r.CreatedAt, string(r.Status), r.Message,
		)
		if err != nil {
			return fmt.Errorf("failed to save follow request %d: %w", r.ID, err)
		}
	}

	counters := map[string]int64{
		"next_user_id":    snap.NextUserID,
		"next_post_id":    snap.NextPostID,
		"next_comment_id": snap.NextCommentID,
		"next_request_id": snap.NextRequestID,
	}
	for name, value := range counters {
		if _, err := tx.Exec("INSERT INTO id_counters (name, value) VALUES (?, ?)", name, value); err != nil {
			return fmt.Errorf("failed to save counter %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit checkpoint: %w", err)
	}
	return nil
}

// LoadSnapshot reads the persisted image back. An empty database yields
// an empty snapshot with id counters starting at 1.
func LoadSnapshot(db *sql.DB) (store.Snapshot, error) {
	snap := store.Snapshot{
		NextUserID:    1,
		NextPostID:    1,
		NextCommentID: 1,
		NextRequestID: 1,
	}

	rows, err := db.Query("SELECT id, email, password_hash, created_at FROM accounts ORDER BY id")
	if err != nil {
		return snap, fmt.Errorf("failed to load accounts: %w", err)
	}
	for rows.Next() {
		var a store.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan account: %w", err)
		}
		snap.Accounts = append(snap.Accounts, a)
	}
	rows.Close()

	rows, err = db.Query(`
        SELECT id, username, bio, avatar, created_at, updated_at,
            follower_count, following_count, post_count,
            profile_visibility, show_social_graph, verification_status
        FROM profiles ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("failed to load profiles: %w", err)
	}
	for rows.Next() {
		var p store.Profile
		var visibility, verification string
		err := rows.Scan(&p.ID, &p.Username, &p.Bio, &p.Avatar, &p.CreatedAt, &p.UpdatedAt,
			&p.FollowerCount, &p.FollowingCount, &p.PostCount,
			&visibility, &p.PrivacySettings.ShowSocialGraph, &verification)
		if err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.PrivacySettings.ProfileVisibility = store.ProfileVisibility(visibility)
		p.VerificationStatus = store.VerificationStatus(verification)
		snap.Profiles = append(snap.Profiles, p)
	}
	rows.Close()

	rows, err = db.Query(`
        SELECT id, author_id, content, created_at, updated_at, like_count, comment_count, visibility
        FROM posts ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("failed to load posts: %w", err)
	}
	for rows.Next() {
		var p store.Post
		var visibility string
		err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.CreatedAt, &p.UpdatedAt,
			&p.LikeCount, &p.CommentCount, &visibility)
		if err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan post: %w", err)
		}
		p.Visibility = store.PostVisibility(visibility)
		snap.Posts = append(snap.Posts, p)
	}
	rows.Close()

	rows, err = db.Query("SELECT id, post_id, author_id, content, created_at, updated_at FROM comments ORDER BY id")
	if err != nil {
		return snap, fmt.Errorf("failed to load comments: %w", err)
	}
	for rows.Next() {
		var c store.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan comment: %w", err)
		}
		snap.Comments = append(snap.Comments, c)
	}
	rows.Close()

	rows, err = db.Query("SELECT post_id, user_id FROM post_likes")
	if err != nil {
		return snap, fmt.Errorf("failed to load likes: %w", err)
	}
	for rows.Next() {
		var like store.Like
		if err := rows.Scan(&like.PostID, &like.UserID); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan like: %w", err)
		}
		snap.Likes = append(snap.Likes, like)
	}
	rows.Close()

	rows, err = db.Query("SELECT follower_id, followed_id FROM follows")
	if err != nil {
		return snap, fmt.Errorf("failed to load follow edges: %w", err)
	}
	for rows.Next() {
		var edge store.Edge
		if err := rows.Scan(&edge.Follower, &edge.Followed); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan follow edge: %w", err)
		}
		snap.Edges = append(snap.Edges, edge)
	}
	rows.Close()

	rows, err = db.Query("SELECT blocker_id, blocked_id FROM blocks")
	if err != nil {
		return snap, fmt.Errorf("failed to load blocks: %w", err)
	}
	for rows.Next() {
		var block store.Block
		if err := rows.Scan(&block.Blocker, &block.Blocked); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan block: %w", err)
		}
		snap.Blocks = append(snap.Blocks, block)
	}
	rows.Close()

	rows, err = db.Query("SELECT id, requester_id, target_id, created_at, status, message FROM follow_requests ORDER BY id")
	if err != nil {
		return snap, fmt.Errorf("failed to load follow requests: %w", err)
	}
	for rows.Next() {
		var r store.FollowRequest
		var status string
		if err := rows.Scan(&r.ID, &r.Requester, &r.Target, &r.CreatedAt, &status, &r.Message); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan follow request: %w", err)
		}
		r.Status = store.RequestStatus(status)
		snap.Requests = append(snap.Requests, r)
	}
	rows.Close()

	rows, err = db.Query("SELECT name, value FROM id_counters")
	if err != nil {
		return snap, fmt.Errorf("failed to load id counters: %w", err)
	}
	for rows.Next() {
		var name string
		var value int64
		if err := rows.Scan(&name, &value); err != nil {
			rows.Close()
			return snap, fmt.Errorf("failed to scan id counter: %w", err)
		}
		switch name {
		case "next_user_id":
			snap.NextUserID = value
		case "next_post_id":
			snap.NextPostID = value
		case "next_comment_id":
			snap.NextCommentID = value
		case "next_request_id":
			snap.NextRequestID = value
		}
	}
	rows.Close()

	return snap, nil
}

// Checkpointer periodically saves store snapshots until stop closes,
// then writes one final checkpoint.
type Checkpointer struct {
	DB       *sql.DB
	Store    *store.Store
	Interval time.Duration
}

// Run blocks until stop closes. Intermediate failures are logged and do
// not halt the loop; the final checkpoint's error is returned.
func (c *Checkpointer) Run(stop <-chan struct{}, logf func(format string, args ...any)) error {
	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := SaveSnapshot(c.DB, c.Store.Snapshot()); err != nil {
				logf("Checkpoint failed: %v", err)
			}
		case <-stop:
			return SaveSnapshot(c.DB, c.Store.Snapshot())
		}
	}
}
