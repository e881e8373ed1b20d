package service

import "errors"

// 业务层错误，handler 和 ws 层据此决定丢弃还是报错。
var ErrUserNotFound = errors.New("user not found")
