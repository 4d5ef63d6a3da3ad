package notes

import "time"

// WelcomeNoteID is the id of the note seeded into an empty store.
const WelcomeNoteID = "welcome-note"

const welcomeContent = `# Welcome to Reflect

Reflect is a clean, powerful note-taking app for your thoughts, ideas, and knowledge.

## Features

- **Markdown Support**: Format your notes with Markdown
- **Organized Structure**: Keep your notes organized in folders
- **Clean Interface**: Focus on your content, not the UI

## Getting Started

1. Create a new note using the + button
2. Organize notes in folders
3. Use markdown to format your content

Enjoy using Reflect!`

// DefaultNotes is the dataset used when no notes have been stored.
func DefaultNotes(now time.Time) []Note {
	return []Note{{
		ID:        WelcomeNoteID,
		Title:     "Welcome to Reflect",
		Content:   welcomeContent,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []string{},
		Revisions: []Revision{},
	}}
}

// DefaultFolders is the dataset used when no folders have been stored.
func DefaultFolders(now time.Time) []Folder {
	return []Folder{
		{ID: "personal", Name: "Personal", CreatedAt: now},
		{ID: "work", Name: "Work", CreatedAt: now},
	}
}
