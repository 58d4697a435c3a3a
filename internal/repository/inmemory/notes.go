package inmemory

import (
	"context"

	"workerTracker/internal/dates"
	"workerTracker/internal/models/note"
	repo "workerTracker/internal/repository"
)

func (s *Storage) CreateNote(ctx context.Context, noteToCreate *note.Note) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	noteToCreate.ID = s.nextNoteID
	s.nextNoteID++
	noteToCreate.CreatedAt = s.now()

	s.notes[noteToCreate.ID] = noteToCreate.Clone()
	s.noteIDs = append(s.noteIDs, noteToCreate.ID)
	return nil
}

func (s *Storage) GetNote(ctx context.Context, id int64) (*note.Note, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	noteToGet, ok := s.notes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return noteToGet.Clone(), nil
}

func (s *Storage) ListNotes(ctx context.Context) ([]*note.Note, error) {
	return s.scanNotes(func(*note.Note) bool { return true }), nil
}

func (s *Storage) ListNotesOnDay(ctx context.Context, day dates.DayKey) ([]*note.Note, error) {
	return s.scanNotes(func(n *note.Note) bool {
		noteDay, ok := n.DayKey()
		return ok && noteDay == day
	}), nil
}

func (s *Storage) UpdateNote(ctx context.Context, id int64, options ...note.NoteOption) (*note.Note, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.notes[id]
	if !ok {
		return nil, repo.ErrNotFound
	}

	updated := existing.Clone()
	note.Apply(updated, options...)
	s.notes[id] = updated

	return updated.Clone(), nil
}

func (s *Storage) DeleteNote(ctx context.Context, id int64) (bool, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.notes[id]; !ok {
		return false, nil
	}
	delete(s.notes, id)
	s.noteIDs = removeID(s.noteIDs, id)
	return true, nil
}

func (s *Storage) scanNotes(match func(*note.Note) bool) []*note.Note {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*note.Note{}
	for _, id := range s.noteIDs {
		n := s.notes[id]
		if match(n) {
			res = append(res, n.Clone())
		}
	}
	return res
}
