package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":               "Invalid request.",
		"error.validation_failed":         "Validation failed.",
		"error.unauthorized":              "Authentication credentials were not provided.",
		"error.token_invalid":             "Given token not valid.",
		"error.forbidden":                 "You do not have permission to perform this action.",
		"error.not_found":                 "Not found.",
		"error.internal":                  "Internal server error.",
		"error.rate_limited":              "Too many attempts, please retry in %d seconds.",
		"error.login_failed":              "Incorrect credentials.",
		"error.captcha_required":          "Captcha is required.",
		"error.captcha_invalid":           "Captcha is invalid.",
		"error.user_disabled":             "This account is disabled.",
		"error.email_exists":              "A user with that email already exists.",
		"error.password_weak":             "Password does not satisfy the password policy.",
		"error.password_too_short":        "Password must be at least %d characters.",
		"error.password_old_invalid":      "Current password is incorrect.",
		"error.product_not_found":         "Product not found.",
		"error.collection_not_found":      "Collection not found.",
		"error.image_not_found":           "Product image not found.",
		"error.review_not_found":          "Review not found.",
		"error.cart_not_found":            "Cart not found.",
		"error.cart_item_not_found":       "Cart item not found.",
		"error.customer_not_found":        "Customer not found.",
		"error.address_not_found":         "Address not found.",
		"error.order_not_found":           "Order not found.",
		"error.promotion_not_found":       "Promotion not found.",
		"error.tag_not_found":             "Tag not found.",
		"error.tagged_item_not_found":     "Tagged item not found.",
		"error.admin_not_found":           "Admin not found.",
		"error.admin_exists":              "An admin with that username already exists.",
		"error.collection_in_use":         "Collection cannot be deleted because it includes one or more products.",
		"error.product_in_use":            "Product cannot be deleted because it is associated with an order item.",
		"error.customer_has_orders":       "Customer cannot be deleted because they have one or more orders.",
		"error.order_has_items":           "Order cannot be deleted because it has one or more order items.",
		"error.product_ref_not_found":     "No product with the given ID was found.",
		"error.collection_ref_not_found":  "No collection with the given ID was found.",
		"error.promotion_ref_not_found":   "One or more promotions were not found.",
		"error.order_cart_not_found":      "No cart with the given ID was found.",
		"error.order_cart_empty":          "The cart is empty.",
		"error.payment_status_invalid":    "Invalid payment status.",
		"error.payment_transition_denied": "Payment status cannot change from %s to %s.",
		"error.tag_exists":                "A tag with that label already exists.",
		"error.tagged_item_exists":        "The object already carries this tag.",
		"error.taggable_type_invalid":     "Unsupported object type.",
		"error.taggable_object_not_found": "No object with the given type and ID was found.",
		"error.unit_price_invalid":        "Ensure the price is between 1.00 and 9999.99 with at most 2 decimal places.",
		"error.upload_missing":            "No image file was submitted.",
		"error.upload_type_invalid":       "Unsupported image type.",
		"error.upload_too_large":          "Image exceeds the maximum allowed size.",
		"error.upload_failed":             "Image upload failed.",
		"error.playground_failed":         "Upstream service unavailable.",
		"error.queue_unavailable":         "Task queue unavailable.",
		"error.role_invalid":              "Invalid role.",
		"error.policy_invalid":            "Invalid policy.",
		"error.authz_unavailable":         "Authorization service unavailable.",
		"error.inventory_invalid":         "Ensure inventory is greater than or equal to 0.",
		"error.title_blank":               "This field may not be blank.",
		"error.quantity_invalid":          "Ensure quantity is greater than or equal to 1.",
		"error.quantity_too_large":        "Ensure quantity is less than or equal to 32767.",
		"error.membership_invalid":        "Membership must be one of B, S, G.",
		"error.email_invalid":             "Enter a valid email address.",
		"email.order_placed.subject":      "Order #%d received",
		"email.order_placed.body":         "Hi %s,\n\nWe received your order #%d with %d item(s). Total: %s.\n\nThank you for shopping with us.",
		"email.payment_status.subject":    "Order #%d payment %s",
		"email.payment_status.body":       "Hi %s,\n\nThe payment status of order #%d is now: %s.",
		"payment_status.P":                "Pending",
		"payment_status.C":                "Complete",
		"payment_status.F":                "Failed",
		"validation.required":             "This field is required.",
		"validation.min":                  "Ensure this value is greater than or equal to %s.",
		"validation.max":                  "Ensure this value is less than or equal to %s.",
		"validation.email":                "Enter a valid email address.",
		"validation.oneof":                "Value must be one of: %s.",
		"validation.invalid":              "Invalid value.",
	},
	LocaleZH: {
		"error.bad_request":               "请求参数错误",
		"error.validation_failed":         "参数校验失败",
		"error.unauthorized":              "未提供认证信息",
		"error.token_invalid":             "认证令牌无效",
		"error.forbidden":                 "没有执行该操作的权限",
		"error.not_found":                 "资源不存在",
		"error.internal":                  "服务器内部错误",
		"error.rate_limited":              "尝试次数过多，请 %d 秒后重试",
		"error.login_failed":              "账号或密码错误",
		"error.captcha_required":          "请输入验证码",
		"error.captcha_invalid":           "验证码错误",
		"error.user_disabled":             "账号已被禁用",
		"error.email_exists":              "该邮箱已被注册",
		"error.password_weak":             "密码不符合安全策略",
		"error.password_too_short":        "密码长度至少 %d 位",
		"error.password_old_invalid":      "当前密码错误",
		"error.product_not_found":         "商品不存在",
		"error.collection_not_found":      "集合不存在",
		"error.image_not_found":           "商品图片不存在",
		"error.review_not_found":          "评价不存在",
		"error.cart_not_found":            "购物车不存在",
		"error.cart_item_not_found":       "购物车项不存在",
		"error.customer_not_found":        "顾客不存在",
		"error.address_not_found":         "地址不存在",
		"error.order_not_found":           "订单不存在",
		"error.promotion_not_found":       "促销活动不存在",
		"error.tag_not_found":             "标签不存在",
		"error.tagged_item_not_found":     "标签关联不存在",
		"error.admin_not_found":           "管理员不存在",
		"error.admin_exists":              "管理员账号已存在",
		"error.collection_in_use":         "集合下仍有商品，无法删除",
		"error.product_in_use":            "商品已被订单项引用，无法删除",
		"error.customer_has_orders":       "顾客存在订单，无法删除",
		"error.order_has_items":           "订单包含订单项，无法删除",
		"error.product_ref_not_found":     "指定的商品不存在",
		"error.collection_ref_not_found":  "指定的集合不存在",
		"error.promotion_ref_not_found":   "部分促销活动不存在",
		"error.order_cart_not_found":      "指定的购物车不存在",
		"error.order_cart_empty":          "购物车为空",
		"error.payment_status_invalid":    "支付状态无效",
		"error.payment_transition_denied": "支付状态无法从 %s 变更为 %s",
		"error.tag_exists":                "标签已存在",
		"error.tagged_item_exists":        "该对象已关联此标签",
		"error.taggable_type_invalid":     "不支持的对象类型",
		"error.taggable_object_not_found": "指定的对象不存在",
		"error.unit_price_invalid":        "价格需在 1.00 到 9999.99 之间且最多两位小数",
		"error.upload_missing":            "未提交图片文件",
		"error.upload_type_invalid":       "不支持的图片类型",
		"error.upload_too_large":          "图片超过大小限制",
		"error.upload_failed":             "图片上传失败",
		"error.playground_failed":         "上游服务不可用",
		"error.queue_unavailable":         "任务队列不可用",
		"error.role_invalid":              "角色无效",
		"error.policy_invalid":            "策略无效",
		"error.authz_unavailable":         "权限服务不可用",
		"error.inventory_invalid":         "库存不能小于 0",
		"error.title_blank":               "该字段不能为空",
		"error.quantity_invalid":          "数量不能小于 1",
		"error.quantity_too_large":        "数量不能大于 32767",
		"error.membership_invalid":        "会员等级必须是 B、S、G 之一",
		"error.email_invalid":             "邮箱格式不正确",
		"email.order_placed.subject":      "订单 #%d 已收到",
		"email.order_placed.body":         "%s 您好：\n\n我们已收到您的订单 #%d，共 %d 件商品，合计 %s。\n\n感谢您的惠顾。",
		"email.payment_status.subject":    "订单 #%d 支付%s",
		"email.payment_status.body":       "%s 您好：\n\n订单 #%d 的支付状态已更新为：%s。",
		"payment_status.P":                "待支付",
		"payment_status.C":                "已完成",
		"payment_status.F":                "失败",
		"validation.required":             "该字段为必填项",
		"validation.min":                  "该值不能小于 %s",
		"validation.max":                  "该值不能大于 %s",
		"validation.email":                "请输入有效的邮箱地址",
		"validation.oneof":                "取值必须为：%s",
		"validation.invalid":              "取值无效",
	},
}
