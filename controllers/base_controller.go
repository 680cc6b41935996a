package controllers

import (
	"net/http"
	"strings"

	"society-connect-http-service/middleware"
	"society-connect-http-service/services"

	"github.com/gin-gonic/gin"
)

// requirePrincipal 从上下文中取出已认证的用户身份，缺失时返回401
func requirePrincipal(ctx *gin.Context) (services.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "未认证",
			"data":    nil,
		})
		return services.Principal{}, false
	}
	return principal, true
}

// statusForError 根据业务错误信息映射HTTP状态码
func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "只有管理员") || strings.HasPrefix(msg, "只有维修人员") ||
		strings.HasPrefix(msg, "只有居民") || strings.HasPrefix(msg, "只有投诉发起人") ||
		strings.Contains(msg, "权限") || strings.Contains(msg, "未分配给您"):
		return http.StatusForbidden
	case strings.HasSuffix(msg, "不存在"):
		return http.StatusNotFound
	case msg == "本月物业费已缴纳" || msg == "用户名已被使用" ||
		msg == "只有待处理的投诉可以分配" || msg == "只有已解决的投诉可以评价结单" ||
		msg == "非法的状态迁移":
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// respondError 按统一的响应格式输出业务错误
func respondError(ctx *gin.Context, err error) {
	status := statusForError(err)
	ctx.JSON(status, gin.H{
		"code":    status,
		"message": err.Error(),
		"data":    nil,
	})
}
