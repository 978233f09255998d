package lawbot

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrCredentialRequired indicates no credential is available; the
	// caller should open the credential setup prompt.
	ErrCredentialRequired = errors.New("credential required")

	// ErrInvalidCredential indicates the remote endpoint rejected the
	// credential as invalid or expired.
	ErrInvalidCredential = errors.New("invalid or expired credential")

	// ErrLookupFailed indicates a generic remote or transport failure.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrBusy indicates a send was attempted while another reply stream
	// is still in flight.
	ErrBusy = errors.New("send already in progress")

	// ErrEmptyMessage indicates an empty or whitespace-only send.
	ErrEmptyMessage = errors.New("empty message")
)

// Localized notices shown in the transcript when a reply fails.
const (
	// NoticeInvalidCredential is shown when the endpoint rejects the
	// credential.
	NoticeInvalidCredential = "API 키가 유효하지 않거나 만료되었습니다. 설정을 확인해 주세요."

	// NoticeLookupFailed is shown for any other remote failure.
	NoticeLookupFailed = "법률 정보를 검색하는 도중 오류가 발생했습니다."

	// ErrorPrefix marks an in-transcript error message.
	ErrorPrefix = "[시스템 오류] "
)
