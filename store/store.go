package store

import (
	"context"
)

type Store struct {
	ctx           context.Context
	localChan     chan *LocalRoute
	committedChan chan *CommittedRoute
	executedChan  chan *ExecutedRoute
	dao           *Dao
}

func NewStore(ctx context.Context, url, scheme, user, passwd string) *Store {
	s := &Store{
		ctx:           ctx,
		localChan:     make(chan *LocalRoute, 32),
		committedChan: make(chan *CommittedRoute, 32),
		executedChan:  make(chan *ExecutedRoute, 32),
	}
	s.dao = NewDao(url, scheme, user, passwd)
	return s
}

func (s *Store) Start() {
	go s.store()
}

func (s *Store) Stop() {

}

func (s *Store) store() {
	for {
		select {
		case route := <-s.localChan:
			s.dao.SaveLocalRoute(route)
		case route := <-s.committedChan:
			s.dao.SaveCommittedRoute(route)
		case route := <-s.executedChan:
			s.dao.SaveExecutedRoute(route)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Store) StoreLocalRoute(route *LocalRoute) {
	s.localChan <- route
}

func (s *Store) StoreCommittedRoute(route *CommittedRoute) {
	s.committedChan <- route
}

func (s *Store) StoreExecutedRoute(route *ExecutedRoute) {
	s.executedChan <- route
}

func (s *Store) GetLocalRoute(id uint64) ([]*LocalRoute, error) {
	return s.dao.SelectLocalRoute(id)
}

func (s *Store) GetCommittedRoute(id uint64) ([]*CommittedRoute, error) {
	return s.dao.SelectCommittedRoute(id)
}

func (s *Store) GetExecutedRoute(id uint64) ([]*ExecutedRoute, error) {
	return s.dao.SelectExecutedRoute(id)
}
