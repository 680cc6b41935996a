package middleware

import (
	"net/http"
	"strings"

	"society-connect-http-service/config"
	"society-connect-http-service/models"
	"society-connect-http-service/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

var jwtService services.InterfaceJWTService

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config) {
	jwtService = services.NewJWTService(cfg)
}

// extractToken 从授权头中提取token
func extractToken(authHeader string) string {
	// 检查并移除 "Bearer " 前缀
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// resolvePrincipal 验证令牌并解析出请求主体，失败时返回nil并写好响应
func resolvePrincipal(c *gin.Context) *services.Principal {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Authorization header is required",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	tokenString := extractToken(authHeader)
	token, err := jwtService.ValidateToken(tokenString)
	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid or expired token",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":    401,
			"message": "Invalid token claims",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	userID, okID := claims["user_id"].(float64)
	roleStr, okRole := claims["role"].(string)
	role := models.UserRole(roleStr)
	if !okID || !okRole || !role.IsValid() {
		// 没有角色的主体不具备任何提升权限
		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "Insufficient permissions: requires valid user role",
			"data":    nil,
		})
		c.Abort()
		return nil
	}

	return &services.Principal{UserID: uint(userID), Role: role}
}

// setPrincipal 将请求主体存入上下文
func setPrincipal(c *gin.Context, principal *services.Principal) {
	c.Set("principal", *principal)
	c.Set("userID", principal.UserID)
	c.Set("role", string(principal.Role))
}

// GetPrincipal 从上下文取出请求主体
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	value, exists := c.Get("principal")
	if !exists {
		return services.Principal{}, false
	}
	principal, ok := value.(services.Principal)
	return principal, ok
}

// Authentication 验证任意已登录用户
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := resolvePrincipal(c)
		if principal == nil {
			return
		}
		setPrincipal(c, principal)
		c.Next()
	}
}

// AuthenticateAdmin 验证管理员权限
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := resolvePrincipal(c)
		if principal == nil {
			return
		}

		if principal.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires admin role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}

// AuthenticateStaff 验证维修人员权限，管理员也可以访问
func AuthenticateStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := resolvePrincipal(c)
		if principal == nil {
			return
		}

		if principal.Role != models.RoleMaintenanceStaff && principal.Role != models.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions: requires maintenance staff role",
				"data":    nil,
			})
			c.Abort()
			return
		}

		setPrincipal(c, principal)
		c.Next()
	}
}
