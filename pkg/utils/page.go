package utils

import "strconv"

// ParsePage 解析页码参数 非法或者小于1的页码一律按第一页处理 不报错
func ParsePage(raw string) int64 {
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// ParseId 解析id参数 非法id返回0 由service层的存在性检查兜底
func ParseId(raw string) int64 {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// PageOffset converts a 1-indexed page to a row offset.
func PageOffset(page, pageSize int64) int64 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
