package config

import "strings"

// ForumConfig holds the forum provider and reddit script-app credentials.
type ForumConfig struct {
	Provider     string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	Subreddit    string
	Author       string
}

// HasCredentials reports whether every reddit credential is present.
func (f ForumConfig) HasCredentials() bool {
	return f.ClientID != "" && f.ClientSecret != "" && f.Username != "" && f.Password != "" && f.Subreddit != ""
}

func loadForum(file fileConfig) ForumConfig {
	return ForumConfig{
		Provider:     strings.ToLower(envOrDefault(envForumProvider, defaultForumProvider)),
		ClientID:     envOrDefault(envRedditClientID, ""),
		ClientSecret: envOrDefault(envRedditSecret, ""),
		Username:     envOrDefault(envRedditUsername, ""),
		Password:     envOrDefault(envRedditPassword, ""),
		Subreddit:    envOrDefault(envRedditSubreddit, file.Subreddit),
		Author:       envOrDefault(envRedditAuthor, ""),
	}
}
