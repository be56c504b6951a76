package service

import (
	"errors"
)

const (
	BadRequest          = 400
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid    = errors.New("invalid parameter")
	ErrPostNotFound    = errors.New("post not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExist    = errors.New("account already exists")
	ErrSysBoxNotFound  = errors.New("notification not found")
	ErrIngestRunning   = errors.New("an ingestion pass is already running")
	ErrSnapshotAppend  = errors.New("post saved but metrics snapshot could not be recorded")
	UnExpectedError    = errors.New("unexpected error, please retry later")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrPostNotFound:    NotFound,
	ErrAccountNotFound: NotFound,
	ErrAccountExist:    Conflict,
	ErrSysBoxNotFound:  NotFound,
	ErrIngestRunning:   Conflict,
	ErrSnapshotAppend:  InternalServerError,
	UnExpectedError:    InternalServerError,
}

// CodeOf business code for err, InternalServerError when err is not a known sentinel
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return InternalServerError, false
}
