package errors

import "errors"

// ErrStoreUnavailable 数据库不可达（连接失败、超时）
var ErrStoreUnavailable = errors.New("数据存储暂不可用")

// ErrForeignKey 写入引用了不存在的记录（课程、教练）
var ErrForeignKey = errors.New("引用的记录不存在")
