package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode         = 0
	ServiceErrCode      = 10001
	ParamErrCode        = 10002
	UserNotExistCode    = 10003
	VideoNotExistCode   = 10004
	CommentNotExistCode = 10005
	SelfFollowCode      = 10006
	MessageForbidCode   = 10007
	ConflictCode        = 10008
	UnavailableCode     = 10009
	MysqlErrCode        = 10010
	RedisErrCode        = 10011
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{ErrCode: code, ErrMsg: msg}
}

func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

var (
	Success    = NewErrNo(SuccessCode, "Success")
	ServiceErr = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	RequestErr = NewErrNo(ParamErrCode, "Wrong Parameter has been given")

	UserNotExistErr    = NewErrNo(UserNotExistCode, "User does not exist")
	VideoNotExistErr   = NewErrNo(VideoNotExistCode, "Video does not exist")
	CommentNotExistErr = NewErrNo(CommentNotExistCode, "Comment does not exist")
	SelfFollowErr      = NewErrNo(SelfFollowCode, "Cannot follow yourself")
	MessageForbidErr   = NewErrNo(MessageForbidCode, "Messaging requires a mutual follow")
	ConflictErr        = NewErrNo(ConflictCode, "Concurrent update conflict, retry the operation")
	UnavailableErr     = NewErrNo(UnavailableCode, "Store temporarily unavailable")

	MysqlErr = NewErrNo(MysqlErrCode, "Mysql operation failed")
	RedisErr = NewErrNo(RedisErrCode, "Redis operation failed")
)

// ConvertErr 将任意error转换为ErrNo 方便handler层统一返回
func ConvertErr(err error) ErrNo {
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	s := ServiceErr
	s.ErrMsg = err.Error()
	return s
}
